package repository

import (
	"database/sql"
	"errors"
	"strings"
)

// isNoRows reports whether err is database/sql's empty-result error.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// likeAny builds "LOWER(col) LIKE ? OR ..." with one %substring% argument
// per entry.
func likeAny(column string, substrings []string) (string, []any) {
	clauses := make([]string, 0, len(substrings))
	args := make([]any, 0, len(substrings))
	for _, s := range substrings {
		clauses = append(clauses, "LOWER("+column+") LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	return strings.Join(clauses, " OR "), args
}
