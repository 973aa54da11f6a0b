package validation

import "regexp"

// inappropriatePatterns flag content the support bot should refuse to
// engage with rather than forward to the model.
var inappropriatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(spam|scam|fraud)\b`),
	regexp.MustCompile(`(?i)\b(hack|exploit|vulnerability)\b`),
}

// Appropriate reports whether the text passes the content policy.
func Appropriate(text string) bool {
	for _, pattern := range inappropriatePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return true
}

// FilterContent masks flagged terms with asterisks, preserving length.
func FilterContent(text string) string {
	filtered := text
	for _, pattern := range inappropriatePatterns {
		filtered = pattern.ReplaceAllStringFunc(filtered, func(match string) string {
			masked := make([]byte, len(match))
			for i := range masked {
				masked[i] = '*'
			}
			return string(masked)
		})
	}
	return filtered
}
