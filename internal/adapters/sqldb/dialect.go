package sqldb

import (
	"strconv"
	"strings"

	"github.com/enunezf/emptrack/internal/core/domain"
)

// rebind rewrites ? placeholders into the dialect's positional form.
// Question marks inside single-quoted literals are left alone.
func rebind(d domain.Dialect, query string) string {
	var prefix string
	switch d {
	case domain.DialectPostgres:
		prefix = "$"
	case domain.DialectSQLServer:
		prefix = "@p"
	default:
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			sb.WriteString(prefix)
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// squash collapses whitespace so statements log on one line
func squash(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
