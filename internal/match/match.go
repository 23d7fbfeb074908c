package match

import "strings"

// Matches reports whether a donor name qualifies for the query. The check is
// case-insensitive after whitespace normalization. A contiguous substring
// always matches; otherwise every query token must be a prefix of some
// donor-name token, which catches legal-suffix variation ("Viessmann GmbH"
// against "Viessmann GmbH & Co. KG").
//
// The same rule applies to server-filtered and client-filtered rows, so both
// paths qualify records identically.
func Matches(donorName, query string) bool {
	name := fold(donorName)
	needle := fold(query)
	if needle == "" {
		return false
	}

	if strings.Contains(name, needle) {
		return true
	}

	nameTokens := strings.Fields(name)
	for _, queryToken := range strings.Fields(needle) {
		if !hasPrefixToken(nameTokens, queryToken) {
			return false
		}
	}
	return true
}

func hasPrefixToken(tokens []string, prefix string) bool {
	for _, token := range tokens {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
