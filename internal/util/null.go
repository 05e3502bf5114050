package util

import "database/sql"

// NullStringOr returns the string value of ns, or fallback when the column
// is null or empty.
func NullStringOr(ns sql.NullString, fallback string) string {
	if !ns.Valid || ns.String == "" {
		return fallback
	}
	return ns.String
}

// NullStringToPtr converts sql.NullString to *string.
// Invalid values are returned as nil.
func NullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
