package team

import "fmt"

// Team is a school program keyed by its school name.
type Team struct {
	School       string
	Mascot       string
	Abbreviation string
	Conference   string
	Division     string
	Location     string
	Raw          string
}

func (t Team) Validate() error {
	if t.School == "" {
		return fmt.Errorf("team school is required")
	}

	return nil
}
