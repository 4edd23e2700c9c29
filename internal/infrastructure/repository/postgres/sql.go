package postgres

import "database/sql"

// unknownValue fills catalog columns the provider left blank, so the
// search filters can treat "no data" and "unknown" the same way.
const unknownValue = "unknown"

func orUnknown(v string) string {
	if v == "" {
		return unknownValue
	}
	return v
}

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}
