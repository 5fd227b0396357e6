package middleware

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicAuth(t *testing.T) {
	encode := func(raw string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	}

	t.Run("parses username and password", func(t *testing.T) {
		username, password, ok := parseBasicAuth(encode("admin:s3cret"))

		require.True(t, ok)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "s3cret", password)
	})

	t.Run("keeps colons in the password", func(t *testing.T) {
		username, password, ok := parseBasicAuth(encode("admin:pass:word"))

		require.True(t, ok)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "pass:word", password)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		_, _, ok := parseBasicAuth("")

		assert.False(t, ok)
	})

	t.Run("rejects other auth schemes", func(t *testing.T) {
		_, _, ok := parseBasicAuth("Bearer some-token")

		assert.False(t, ok)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, _, ok := parseBasicAuth("Basic !!!not-base64!!!")

		assert.False(t, ok)
	})

	t.Run("rejects payload without separator", func(t *testing.T) {
		_, _, ok := parseBasicAuth(encode("adminonly"))

		assert.False(t, ok)
	})
}
