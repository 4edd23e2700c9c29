package player

import "fmt"

// Player is one catalog row keyed by the provider's athlete id.
// Optional attributes stay plain strings; storage substitutes a
// placeholder for the ones the provider left blank.
type Player struct {
	ID         string
	FullName   string
	FirstName  string
	LastName   string
	Position   string
	Team       string
	Conference string
	ClassYear  string
	Height     string
	Weight     string
	Raw        string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("player full name is required")
	}

	return nil
}

// Card is the trimmed projection returned by search.
type Card struct {
	ID         string
	FullName   string
	Team       string
	Position   string
	Conference string
	ClassYear  string
}

type SearchFilter struct {
	Tokens     []string
	Position   string
	Conference string
	Limit      int
}
