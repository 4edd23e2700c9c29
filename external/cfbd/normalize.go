package cfbd

import (
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"cfb-catalog/internal/usecase"
)

// Candidate keys per field, checked in order. The provider has shipped
// several shapes for the same data over the years; the first scalar
// hit wins.
var (
	playerIDKeys         = []string{"id", "playerId", "athleteId"}
	playerFirstNameKeys  = []string{"first_name", "firstName"}
	playerLastNameKeys   = []string{"last_name", "lastName"}
	playerFullNameKeys   = []string{"full_name", "fullName"}
	playerPositionKeys   = []string{"position"}
	playerTeamKeys       = []string{"team", "school"}
	playerConferenceKeys = []string{"conference"}
	playerClassYearKeys  = []string{"year", "class"}
	playerHeightKeys     = []string{"height"}
	playerWeightKeys     = []string{"weight"}

	teamSchoolKeys       = []string{"school", "team"}
	teamMascotKeys       = []string{"mascot"}
	teamAbbreviationKeys = []string{"abbreviation"}
	teamConferenceKeys   = []string{"conference"}
	teamDivisionKeys     = []string{"division"}
)

func normalizePlayer(obj map[string]any) usecase.ExternalPlayerRecord {
	rec := usecase.ExternalPlayerRecord{
		ID:         stringFromKeys(obj, playerIDKeys...),
		FirstName:  stringFromKeys(obj, playerFirstNameKeys...),
		LastName:   stringFromKeys(obj, playerLastNameKeys...),
		Position:   stringFromKeys(obj, playerPositionKeys...),
		Team:       stringFromKeys(obj, playerTeamKeys...),
		Conference: stringFromKeys(obj, playerConferenceKeys...),
		ClassYear:  stringFromKeys(obj, playerClassYearKeys...),
		Height:     stringFromKeys(obj, playerHeightKeys...),
		Weight:     intFromKeys(obj, playerWeightKeys...),
	}
	rec.FullName = stringFromKeys(obj, playerFullNameKeys...)
	if rec.FullName == "" {
		rec.FullName = buildFullName(rec.FirstName, rec.LastName, rec.ID)
	}
	if raw, err := sonic.MarshalString(obj); err == nil {
		rec.Raw = raw
	}

	return rec
}

func normalizeTeam(obj map[string]any) usecase.ExternalTeamRecord {
	rec := usecase.ExternalTeamRecord{
		School:       stringFromKeys(obj, teamSchoolKeys...),
		Mascot:       stringFromKeys(obj, teamMascotKeys...),
		Abbreviation: stringFromKeys(obj, teamAbbreviationKeys...),
		Conference:   stringFromKeys(obj, teamConferenceKeys...),
		Division:     stringFromKeys(obj, teamDivisionKeys...),
		Location:     teamLocation(obj),
	}
	if raw, err := sonic.MarshalString(obj); err == nil {
		rec.Raw = raw
	}

	return rec
}

// stringFromKeys returns the first candidate whose value is a scalar.
// Strings pass through verbatim; numbers render with six significant
// digits. Null, booleans, objects and arrays keep the scan going.
func stringFromKeys(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'g', 6, 64)
		}
	}

	return ""
}

// intFromKeys accepts only a whole JSON number. Fractional values and
// non-numbers fall through to the next candidate.
func intFromKeys(obj map[string]any, keys ...string) *int {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		v, isNumber := value.(float64)
		if !isNumber {
			continue
		}
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			continue
		}
		out := int(v)
		return &out
	}

	return nil
}

func buildFullName(first, last, id string) string {
	full := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if full != "" {
		return full
	}

	return "Player " + id
}

func teamLocation(obj map[string]any) string {
	loc, ok := obj["location"].(map[string]any)
	if !ok {
		return stringFromKeys(obj, "location")
	}

	city := stringFromKeys(loc, "city")
	state := stringFromKeys(loc, "state")
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
