package core

import (
	"fmt"
	"net/url"
	"strings"
)

// ReencodeURL re-encodes a file URL for RFC3986 compliance, as file names listed by the catalog may
// contain characters (brackets, spaces) that aren't escaped
func ReencodeURL(u string) (string, error) {
	// net/url leaves [ and ] alone outside the host
	u = strings.ReplaceAll(u, "[", "%5B")
	u = strings.ReplaceAll(u, "]", "%5D")
	u = strings.ReplaceAll(u, " ", "%20")
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("failed to parse url %s: %w", u, err)
	}
	return parsed.String(), nil
}
