package httpx

import "net/http"

// RequireRole rejects requests whose verified token does not carry one of
// the listed roles. Must run after AuthnMiddleware.
func RequireRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, role := range required {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := roleFromCtx(r.Context())
			if _, ok := want[have]; !ok {
				WriteError(w, http.StatusForbidden, "You are not authorized to perform this action.", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
