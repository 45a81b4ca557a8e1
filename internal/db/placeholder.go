package db

import (
	"fmt"
	"regexp"
	"strconv"
)

// Queries throughout the service are written with ordinal $1..$n
// placeholders. Postgres executes them as-is; the other dialects rewrite the
// tokens structurally. Matching whole `$N` tokens (instead of replacing
// single characters occurrence-by-occurrence) keeps literal text in the
// statement intact.
var placeholderRegexp = regexp.MustCompile(`\$([0-9]+)`)

// rebindQuestion rewrites $N ordinals to MySQL-style ? markers, expanding the
// argument list in occurrence order. Repeated ordinals duplicate their
// argument.
func rebindQuestion(query string, args []any) (string, []any, error) {
	out := make([]any, 0, len(args))
	var rebindErr error

	rebound := placeholderRegexp.ReplaceAllStringFunc(query, func(tok string) string {
		n, err := strconv.Atoi(tok[1:])
		if err != nil || n < 1 || n > len(args) {
			rebindErr = fmt.Errorf("placeholder %s has no matching argument (%d supplied)", tok, len(args))
			return tok
		}
		out = append(out, args[n-1])
		return "?"
	})
	if rebindErr != nil {
		return "", nil, rebindErr
	}
	return rebound, out, nil
}

// rebindAt rewrites $N ordinals to @pN named markers for SQL Server. The
// driver binds positional arguments to @p1..@pN, so the argument list passes
// through unchanged; repeated ordinals simply reference the same parameter.
func rebindAt(query string, args []any) (string, []any, error) {
	var rebindErr error

	rebound := placeholderRegexp.ReplaceAllStringFunc(query, func(tok string) string {
		n, err := strconv.Atoi(tok[1:])
		if err != nil || n < 1 || n > len(args) {
			rebindErr = fmt.Errorf("placeholder %s has no matching argument (%d supplied)", tok, len(args))
			return tok
		}
		return "@p" + strconv.Itoa(n)
	})
	if rebindErr != nil {
		return "", nil, rebindErr
	}
	return rebound, args, nil
}
