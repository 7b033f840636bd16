package snapshot

import (
	"net/http"
	"strings"
)

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// EscapeHTML replaces angle brackets so serialized payloads cannot inject
// markup. No other characters are touched.
func EscapeHTML(s string) string {
	return angleEscaper.Replace(s)
}

var formatSelectors = []string{"format=html", "format=shtm"}

// ServiceURL rewrites an absolute request URL into a base URL the snapshot
// page can append query parameters to. The html/shtm format selectors are
// removed and the result always ends with "?" or "&". Only the separator
// left behind by a removed selector is dropped; the rest of the URL is kept
// as-is.
func ServiceURL(absoluteURL string) string {
	url := absoluteURL
	for _, selector := range formatSelectors {
		url = stripSelector(url, selector)
	}
	url = strings.TrimRight(url, "?&")
	if strings.Contains(url, "?") {
		return url + "&"
	}
	return url + "?"
}

func stripSelector(url, selector string) string {
	for {
		i := strings.Index(url, selector)
		if i < 0 {
			return url
		}
		rest := url[i+len(selector):]
		if i > 0 && (url[i-1] == '?' || url[i-1] == '&') && strings.HasPrefix(rest, "&") {
			rest = rest[1:]
		}
		url = url[:i] + rest
	}
}

// SkipRedirect reports whether formatting should be skipped because the
// response is a redirect. Responses carrying a Location header are skipped
// unless status equals createdStatus.
func SkipRedirect(status int, header http.Header, createdStatus int) bool {
	if header == nil || header.Get("Location") == "" {
		return false
	}
	return status != createdStatus
}
