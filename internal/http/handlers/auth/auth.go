package auth

import (
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services/auth"
	"net/http"
	"strings"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024

	// Browsers cannot set headers on EventSource requests.
	AUTH_TOKEN_QUERY_PARAM  = "token"
	EVENT_STREAM_MEDIA_TYPE = "text/event-stream"
)

func ParseToken(r *http.Request) (token user.AuthToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return parseQueryToken(r)
	}
	parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
	if len(parts) != 2 {
		return token, false
	}
	if len(parts[1]) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.AuthToken(parts[1]), true
}

// parseQueryToken reads the token of an EventSource request. URLs end up in
// access logs and proxy logs, so any other request must use the header.
func parseQueryToken(r *http.Request) (token user.AuthToken, ok bool) {
	if r.Method != http.MethodGet || !strings.Contains(r.Header.Get("accept"), EVENT_STREAM_MEDIA_TYPE) {
		return token, false
	}
	raw := r.URL.Query().Get(AUTH_TOKEN_QUERY_PARAM)
	if raw == "" || len(raw) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.AuthToken(raw), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithAuthToken(r.Context(), token))
		}
		if r.URL.Query().Has(AUTH_TOKEN_QUERY_PARAM) {
			r = withoutQueryToken(r)
		}
		next.ServeHTTP(w, r)
	})
}

// withoutQueryToken hides the token from the handlers down the chain.
func withoutQueryToken(r *http.Request) *http.Request {
	query := r.URL.Query()
	query.Del(AUTH_TOKEN_QUERY_PARAM)
	u := *r.URL
	u.RawQuery = query.Encode()
	r = r.Clone(r.Context())
	r.URL = &u
	r.RequestURI = u.RequestURI()
	return r
}
