// Package auth provides HTTP basic auth checking for the private endpoints.
package auth

import "crypto/subtle"

// MetadataKey marks a Huma operation as requiring basic auth when set to true
// in the operation metadata.
const MetadataKey = "private"

// Credentials holds the configured basic auth username and password.
type Credentials struct {
	Username string
	Password string
}

// Verify compares the presented credentials in constant time.
func (c Credentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1

	return userOK && passOK
}
