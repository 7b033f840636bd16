package host

import "strings"

const (
	MimeHTML       = "text/html"
	MimeJSONReport = "text/jsonreport"
	MimeJSON       = "application/json"
)

// ContentFormat returns the short format name for a MIME type, e.g.
// "text/html; charset=utf-8" becomes "html".
func ContentFormat(mime string) string {
	base := BaseMime(mime)
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return base
}

// BaseMime drops MIME parameters and normalises case.
func BaseMime(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// MimeForFormat maps a ?format= query value to a MIME type.
func MimeForFormat(format string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "html", "shtm":
		return MimeHTML, true
	case "jsonreport":
		return MimeJSONReport, true
	case "json":
		return MimeJSON, true
	default:
		return "", false
	}
}
