package docval

import (
	"strings"
	"time"
)

// dateFormats are the layouts identity documents commonly carry. Dates are
// stored as the model read them off the document, so parsing has to try
// the ambiguous regional layouts too.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// parseDate parses a document date string in common formats.
// Returns the zero time when no layout matches.
func parseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
