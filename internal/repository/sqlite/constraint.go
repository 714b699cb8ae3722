package sqlite

import (
	"errors"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/jobtracker/internal/apperror"
)

// This file turns SQLite constraint failures into the application's error
// taxonomy. It is the only place that looks inside driver errors; everything
// above the repository sees apperror values.
//
// MESSAGE GRAMMAR (versioned assumption, pinned by constraint_test.go):
// modernc.org/sqlite reports constraint failures as
//
//	constraint failed: UNIQUE constraint failed: users.email (2067)
//	constraint failed: CHECK constraint failed: status IN ('interview', 'pending', 'declined') (275)
//	constraint failed: CHECK constraint failed: length(role) <= 100 (275)
//
// i.e. the failing detail follows the last "constraint failed:" marker and a
// numeric extended result code trails in parentheses. For UNIQUE the detail
// is table.column; for CHECK it is the constraint expression, in which the
// offending column is the first identifier (possibly wrapped in length())
// and, for IN constraints, the allowed values follow the opening parenthesis
// after "IN". This wording is SQLite's, not ours — if the engine changes it,
// the pinned tests break first.

// translateConstraint maps a driver error to an *apperror.AppError, or nil
// if the error is not a constraint violation (the caller then wraps it as an
// ordinary internal failure).
func translateConstraint(err error) *apperror.AppError {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return nil
	}
	code := se.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	msg := trimResultCode(se.Error())

	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		if field := uniqueColumn(msg); field != "" {
			return apperror.Duplicate(field)
		}
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		field, allowed := checkConstraintDetail(msg)
		if field != "" {
			if allowed != "" {
				return apperror.ValidationFailed(field, fmt.Sprintf(
					"Invalid value for the '%s' field. Allowed values: (%s)", field, allowed))
			}
			return apperror.ValidationFailed(field, fmt.Sprintf(
				"Invalid value for the '%s' field", field))
		}
	}

	// Foreign-key failures and anything we couldn't attribute to a field.
	return apperror.ValidationFailed("", "Database constraint violation")
}

// trimResultCode strips the trailing " (NNN)" numeric result code the driver
// appends to its messages. The check is strict — a parenthesized suffix that
// isn't all digits (like the tail of an IN list) is left alone.
func trimResultCode(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ")") {
		return s
	}
	i := strings.LastIndex(s, "(")
	if i < 0 {
		return s
	}
	inner := s[i+1 : len(s)-1]
	if inner == "" {
		return s
	}
	for _, r := range inner {
		if r < '0' || r > '9' {
			return s
		}
	}
	return strings.TrimSpace(s[:i])
}

// uniqueColumn extracts the column name from a UNIQUE failure message:
// "... UNIQUE constraint failed: users.email" → "email".
func uniqueColumn(msg string) string {
	const marker = "UNIQUE constraint failed:"
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	detail := strings.TrimSpace(msg[i+len(marker):])
	// Composite unique indexes list several columns; report the first.
	if c := strings.IndexByte(detail, ','); c >= 0 {
		detail = strings.TrimSpace(detail[:c])
	}
	if d := strings.IndexByte(detail, '.'); d >= 0 {
		detail = detail[d+1:]
	}
	return detail
}

// checkConstraintDetail extracts the offending column and, when the
// constraint is an enumerated IN set, the allowed values from a CHECK
// failure message.
//
// "... CHECK constraint failed: status IN ('interview', 'pending', 'declined')"
// → ("status", "'interview', 'pending', 'declined'")
// "... CHECK constraint failed: length(role) <= 100" → ("role", "")
func checkConstraintDetail(msg string) (field, allowed string) {
	const marker = "CHECK constraint failed:"
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", ""
	}
	expr := strings.TrimSpace(msg[i+len(marker):])

	// The column name is the first token of the expression. When the check
	// wraps it in a call like length(role), take the argument instead.
	tok := expr
	if sp := strings.IndexByte(tok, ' '); sp >= 0 {
		tok = tok[:sp]
	}
	if open := strings.IndexByte(tok, '('); open >= 0 {
		if close := strings.IndexByte(tok, ')'); close > open+1 {
			tok = tok[open+1 : close]
		} else {
			tok = tok[:open]
		}
	}
	field = tok

	if j := strings.Index(expr, " IN ("); j >= 0 {
		allowed = expr[j+len(" IN ("):]
		allowed = strings.TrimSuffix(strings.TrimSpace(allowed), ")")
	}

	return field, allowed
}
