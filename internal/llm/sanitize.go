package llm

import (
	"regexp"
	"strings"
)

var (
	reCodeFence   = regexp.MustCompile("```(?:json)?")
	reBadEscape   = regexp.MustCompile(`\\([^"\\/bfnrtu])`)
	reDupComma    = regexp.MustCompile(`,\s*,`)
	reTrailArray  = regexp.MustCompile(`,\s*\]`)
	reTrailObject = regexp.MustCompile(`,\s*\}`)

	curlyQuotes = strings.NewReplacer(
		"“", `"`, // “
		"”", `"`, // ”
	)
)

// SanitizeJSON repairs the malformations models habitually wrap around an
// otherwise-usable JSON object: markdown code fences, prose before/after the
// object, curly quotes, escape sequences JSON doesn't define, duplicated
// commas, and trailing commas before a closing bracket or brace.
// Sanitizing already-valid JSON leaves its parsed value unchanged.
func SanitizeJSON(s string) string {
	s = reCodeFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// Drop anything outside the outermost object.
	if i, j := strings.Index(s, "{"), strings.LastIndex(s, "}"); i != -1 && j > i {
		s = s[i : j+1]
	}

	s = curlyQuotes.Replace(s)
	s = reBadEscape.ReplaceAllString(s, "$1")
	s = reDupComma.ReplaceAllString(s, ",")
	s = reTrailArray.ReplaceAllString(s, "]")
	s = reTrailObject.ReplaceAllString(s, "}")
	return s
}

// ExtractBalancedObject scans from the first '{' tracking brace depth and
// returns the substring at which the depth returns to zero. This recovers an
// object step 2's first-{/last-} slice misses when trailing prose itself
// contains a '}'.
func ExtractBalancedObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
