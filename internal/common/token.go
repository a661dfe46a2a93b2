package common

import "strings"

// BearerToken extracts the token from an Authorization header value.
// It returns ErrMissingToken when the header is empty, lacks the Bearer
// prefix, or carries an empty token.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
