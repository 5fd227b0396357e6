package handlers

import (
	"errors"
	"regexp"
	"strings"
)

var (
	errInvalidURL      = errors.New("url is not well formed")
	errForeignShortURL = errors.New("short url was not generated by this service")
)

// urlShape accepts http/https/ftp URLs with an optional scheme. Reachability
// is never checked; only the shape is.
var urlShape = regexp.MustCompile(`^(?:(?:https?|ftp)://)?[\w/\-?=%.]+\.[\w/\-?=%.]+$`)

var tokenShape = regexp.MustCompile(`^[A-Za-z0-9]{9}$`)

// ValidateURL checks that the value looks like a URL worth shortening.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !urlShape.MatchString(raw) {
		return "", errInvalidURL
	}

	return raw, nil
}

// ParseShortURL extracts the token from a short URL generated by this
// service. The URL must start with the configured base URL and end with a
// well-formed token.
func ParseShortURL(baseURL, shortURL string) (string, error) {
	token, ok := strings.CutPrefix(strings.TrimSpace(shortURL), baseURL+"/")
	if !ok || !tokenShape.MatchString(token) {
		return "", errForeignShortURL
	}

	return token, nil
}
