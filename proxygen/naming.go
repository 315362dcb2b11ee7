package proxygen

import (
	"strconv"
	"strings"
	"unicode"
)

// ShellName returns the default shell type name for a base type.
// e.g., "Target" → "targetProxy", "HTTPClient" → "httpClientProxy"
func ShellName(base string) string {
	return lowerInitialism(base) + "Proxy"
}

// OutputFile returns the default file name for a base type's shell.
// e.g., "Target" → "target_proxy.go", "HTTPClient" → "http_client_proxy.go"
func OutputFile(base string) string {
	return toSnake(base) + "_proxy.go"
}

// paramName names the i-th parameter of a generated method. Positional names
// never collide with the receiver or locals.
func paramName(i int) string {
	return "a" + strconv.Itoa(i)
}

// lowerInitialism lowercases the leading upper-case run of s, keeping the last
// upper-case letter of a run that starts a new word.
func lowerInitialism(s string) string {
	r := []rune(s)
	for i := 0; i < len(r) && unicode.IsUpper(r[i]); i++ {
		if i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// toSnake converts a Go identifier to snake_case.
func toSnake(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			prevLower := i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1]))
			nextLower := i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) && unicode.IsUpper(r[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
