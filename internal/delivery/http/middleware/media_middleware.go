package middleware

import (
	"context"
	"net/http"
	"strings"
)

const MediaBaseKey contextKey = "media_base"

// MediaMiddleware records the absolute media base of the current request so
// serializers can build absolute image URLs.
type MediaMiddleware struct {
	mediaURL string
}

func NewMediaMiddleware(mediaURL string) *MediaMiddleware {
	if mediaURL == "" {
		mediaURL = "/media/"
	}
	return &MediaMiddleware{mediaURL: mediaURL}
}

func (m *MediaMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), MediaBaseKey, m.baseFor(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *MediaMiddleware) baseFor(r *http.Request) string {
	if strings.HasPrefix(m.mediaURL, "http://") || strings.HasPrefix(m.mediaURL, "https://") {
		return m.mediaURL
	}

	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	} else if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + "/" + strings.TrimPrefix(m.mediaURL, "/")
}

// GetMediaBaseFromContext returns the media base set by MediaMiddleware, or
// an empty string outside a request.
func GetMediaBaseFromContext(ctx context.Context) string {
	base, _ := ctx.Value(MediaBaseKey).(string)
	return base
}
