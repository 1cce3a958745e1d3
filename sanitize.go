package infirmary

import (
	"regexp"
	"strings"
	"time"
)

const diagnosticDateLayout = "2006-01-02 15:04:05"

var (
	htmlEntityPattern = regexp.MustCompile(`&[a-z]+;|&#[0-9]+;`)
	htmlTagPattern    = regexp.MustCompile(`(?i)</?[^>]+>`)

	// layouts the backend has been seen to send diagnostic dates in
	diagnosticDateInputLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// RemoveHTMLTags turns result markup into plain text: <br> becomes a line break,
// entities are dropped and every other tag is removed.
func RemoveHTMLTags(in string) string {
	in = strings.ReplaceAll(in, "<br>", "\n")
	in = htmlEntityPattern.ReplaceAllString(in, "")
	return htmlTagPattern.ReplaceAllString(in, "")
}

// NormalizeDiagnosticDate renders a backend timestamp as "YYYY-MM-DD HH:MM:SS" in the given location.
// Timestamps without a zone are read as being in that location already.
func NormalizeDiagnosticDate(in string, location *time.Location) (string, error) {
	if location == nil {
		location = time.Local
	}
	var lastErr error
	for _, layout := range diagnosticDateInputLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(in), location)
		if err == nil {
			return t.In(location).Format(diagnosticDateLayout), nil
		}
		lastErr = err
	}
	return "", lastErr
}
