package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/auth"
)

// BasicAuth returns a Huma middleware enforcing basic auth on operations
// marked private via auth.MetadataKey. Public operations pass through.
func BasicAuth(api huma.API, creds auth.Credentials) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !isPrivate(ctx) {
			next(ctx)

			return
		}

		username, password, ok := parseBasicAuth(ctx.Header("Authorization"))
		if !ok || !creds.Verify(username, password) {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="shortlinks"`)
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "unauthorized")

			return
		}

		next(ctx)
	}
}

func isPrivate(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	private, ok := op.Metadata[auth.MetadataKey].(bool)

	return ok && private
}

func parseBasicAuth(header string) (string, string, bool) {
	const prefix = "Basic "

	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	username, password, ok := strings.Cut(string(decoded), ":")

	return username, password, ok
}
