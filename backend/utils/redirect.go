package utils

import (
	"net/url"
	"strings"
)

// LoginRedirect builds the login location that returns to next afterwards.
// The API prefix is dropped so next names the page, not the endpoint.
func LoginRedirect(next string) string {
	next = strings.TrimPrefix(next, "/api")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/login"
	}
	return "/login?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}
