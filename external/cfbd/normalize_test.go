package cfbd

import "testing"

func TestNormalizePlayer_AliasOrderWins(t *testing.T) {
	t.Parallel()

	rec := normalizePlayer(map[string]any{
		"playerId":   "p-77",
		"athleteId":  "a-99",
		"first_name": "Marcus",
		"firstName":  "WRONG",
		"lastName":   "Reed",
		"school":     "Georgia",
		"position":   "QB",
		"conference": "SEC",
		"year":       float64(2024),
	})

	if rec.ID != "p-77" {
		t.Fatalf("expected playerId alias to win, got id=%q", rec.ID)
	}
	if rec.FirstName != "Marcus" {
		t.Fatalf("expected first_name alias to win, got %q", rec.FirstName)
	}
	if rec.LastName != "Reed" {
		t.Fatalf("expected lastName fallback, got %q", rec.LastName)
	}
	if rec.Team != "Georgia" {
		t.Fatalf("expected school fallback for team, got %q", rec.Team)
	}
	if rec.ClassYear != "2024" {
		t.Fatalf("expected numeric year rendered as string, got %q", rec.ClassYear)
	}
	if rec.FullName != "Marcus Reed" {
		t.Fatalf("unexpected full name %q", rec.FullName)
	}
}

func TestNormalizePlayer_NonScalarCandidatesAreSkipped(t *testing.T) {
	t.Parallel()

	rec := normalizePlayer(map[string]any{
		"id":       true,
		"playerId": map[string]any{"value": 1},
		"athleteId": "a-5",
		"first_name": nil,
		"firstName":  "Jalen",
	})

	if rec.ID != "a-5" {
		t.Fatalf("expected scan to reach athleteId, got id=%q", rec.ID)
	}
	if rec.FirstName != "Jalen" {
		t.Fatalf("expected scan past null first_name, got %q", rec.FirstName)
	}
}

func TestNormalizePlayer_NumbersUseSixSignificantDigits(t *testing.T) {
	t.Parallel()

	rec := normalizePlayer(map[string]any{"id": float64(1234567)})
	if rec.ID != "1.23457e+06" {
		t.Fatalf("expected six significant digits, got %q", rec.ID)
	}

	rec = normalizePlayer(map[string]any{"id": float64(102)})
	if rec.ID != "102" {
		t.Fatalf("expected whole number rendered plainly, got %q", rec.ID)
	}
}

func TestNormalizePlayer_WeightOnlyFromWholeNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  *int
	}{
		{name: "whole number", value: float64(215), want: intPtr(215)},
		{name: "fractional number", value: float64(215.4), want: nil},
		{name: "numeric string", value: "215", want: nil},
		{name: "boolean", value: true, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := normalizePlayer(map[string]any{"id": "p1", "weight": tc.value})
			if tc.want == nil {
				if rec.Weight != nil {
					t.Fatalf("expected nil weight, got %d", *rec.Weight)
				}
				return
			}
			if rec.Weight == nil || *rec.Weight != *tc.want {
				t.Fatalf("expected weight %d, got %v", *tc.want, rec.Weight)
			}
		})
	}
}

func TestNormalizePlayer_ProviderFullNameWins(t *testing.T) {
	t.Parallel()

	rec := normalizePlayer(map[string]any{"id": "p-1", "full_name": "John Smith"})
	if rec.FullName != "John Smith" {
		t.Fatalf("expected provider full_name, got %q", rec.FullName)
	}

	rec = normalizePlayer(map[string]any{
		"id":         "p-2",
		"fullName":   "Jalen Carter",
		"first_name": "J.",
		"last_name":  "Carter",
	})
	if rec.FullName != "Jalen Carter" {
		t.Fatalf("expected fullName alias over first/last join, got %q", rec.FullName)
	}
}

func TestNormalizePlayer_SynthesizesFullName(t *testing.T) {
	t.Parallel()

	rec := normalizePlayer(map[string]any{"id": "42"})
	if rec.FullName != "Player 42" {
		t.Fatalf("expected synthesized full name, got %q", rec.FullName)
	}

	rec = normalizePlayer(map[string]any{"id": "42", "last_name": "Hill"})
	if rec.FullName != "Hill" {
		t.Fatalf("expected trimmed join of names, got %q", rec.FullName)
	}
}

func TestNormalizeTeam_LocationFromNestedObject(t *testing.T) {
	t.Parallel()

	rec := normalizeTeam(map[string]any{
		"school":       "Alabama",
		"mascot":       "Crimson Tide",
		"abbreviation": "ALA",
		"conference":   "SEC",
		"location": map[string]any{
			"city":  "Tuscaloosa",
			"state": "AL",
		},
	})

	if rec.School != "Alabama" {
		t.Fatalf("unexpected school %q", rec.School)
	}
	if rec.Location != "Tuscaloosa, AL" {
		t.Fatalf("unexpected location %q", rec.Location)
	}
	if rec.Raw == "" {
		t.Fatalf("expected raw payload to be captured")
	}
}

func intPtr(v int) *int {
	return &v
}
