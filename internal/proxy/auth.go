package proxy

import (
	"encoding/base64"
	"strings"

	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// SplitAuth separates "user:password@" from a proxy URL. The split is
// literal: nothing is percent-decoded, so joining the parts back gives the
// original string.
func SplitAuth(raw string) (proxyURL, auth string, err error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return "", "", wderr.NewProxyResolutionError(raw, "proxy URL must include a scheme", nil)
	}

	authority, tail := rest, ""
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		authority, tail = rest[:end], rest[end:]
	}

	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return raw, "", nil
	}
	return scheme + "://" + authority[at+1:] + tail, authority[:at], nil
}

// SplitUserPassword splits an auth string at the first colon.
func SplitUserPassword(auth string) (user, password string) {
	user, password, _ = strings.Cut(auth, ":")
	return user, password
}

// BasicAuth renders an auth string as a Basic credential.
func BasicAuth(auth string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth))
}
