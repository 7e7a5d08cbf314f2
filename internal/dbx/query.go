package dbx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notevault/internal/common"
)

// Rebind rewrites '?' placeholders into the form the dialect expects.
// Queries are written once with '?', which SQLite accepts as is; PostgreSQL
// needs positional $1, $2, ... markers. Placeholders inside quoted literals
// are left alone.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unavailable wraps a driver error so callers can match it with
// common.ErrorStorageUnavailable while keeping the cause in the chain.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("db error: %w: %w", common.ErrorStorageUnavailable, err)
}
