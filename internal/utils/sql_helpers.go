package utils

import (
	"database/sql"
)

// NullStringToString convertit sql.NullString en string
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// NullStringToPointer convertit sql.NullString en *string
func NullStringToPointer(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// NonNil retourne une slice vide à la place de nil (JSON [] au lieu de null)
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
