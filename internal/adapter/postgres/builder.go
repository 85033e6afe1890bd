package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder using PostgreSQL $N placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Page limits shared by the list queries.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
