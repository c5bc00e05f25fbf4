package recipes

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	envEscaper        = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
)

// envQuote renders s as a double-quoted env file value. Backslashes, quotes
// and dollar signs are escaped so neither the parser nor variable expansion
// can change the value. Line breaks cannot be represented and are rejected.
func envQuote(s string) (string, error) {
	if strings.ContainsAny(s, "\r\n") {
		return "", fmt.Errorf("env value contains a line break")
	}
	return `"` + envEscaper.Replace(s) + `"`, nil
}

// identifier passes s through unchanged if it is a plain identifier, the
// only thing allowed inside generated string literals such as a Prisma
// provider name.
func identifier(s string) (string, error) {
	if !identifierPattern.MatchString(s) {
		return "", fmt.Errorf("%q is not a valid identifier", s)
	}
	return s, nil
}
