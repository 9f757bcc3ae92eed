package catalog

import "github.com/microcosm-cc/bluemonday"

// titles and comment text are user generated and rendered straight into the
// page, so everything HTML-shaped is stripped before storage.
var strictPolicy = bluemonday.StrictPolicy()

func sanitizeText(text string) string {
	return strictPolicy.Sanitize(text)
}
