package analytics

import (
	"regexp"
	"strings"
)

// MatchEmailPattern reports whether an email satisfies a filter pattern.
//
// Supported patterns, first match wins:
//   - exact address
//   - "@domain.com"  emails ending with the domain
//   - "user@*"       emails starting with "user@"
//   - "*@domain.com" emails with that domain
//   - any other "*"  fully-anchored glob, "*" matches zero or more chars
//   - plain text     substring match
//
// An empty pattern matches everything; an empty email matches nothing.
func MatchEmailPattern(email, pattern string) bool {
	if pattern == "" {
		return true
	}
	if email == "" {
		return false
	}

	pattern = strings.ToLower(strings.TrimSpace(pattern))
	email = strings.ToLower(strings.TrimSpace(email))

	if pattern == email {
		return true
	}

	if strings.HasPrefix(pattern, "@") {
		return strings.HasSuffix(email, pattern)
	}

	if strings.HasSuffix(pattern, "@*") {
		prefix := strings.TrimSuffix(pattern, "@*")
		return strings.HasPrefix(email, prefix+"@")
	}

	if strings.HasPrefix(pattern, "*@") {
		return strings.HasSuffix(email, pattern[1:])
	}

	if strings.Contains(pattern, "*") {
		escaped := strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*")
		re, err := regexp.Compile("^" + escaped + "$")
		if err != nil {
			return false
		}
		return re.MatchString(email)
	}

	return strings.Contains(email, pattern)
}
