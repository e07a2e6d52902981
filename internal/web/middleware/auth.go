package middleware

import (
	"context"
	"net/http"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"

	// TokenCookieName holds the identity token issued by the account service
	TokenCookieName = "token"
)

// GetIdentity retrieves the authenticated identity from the request context
// Returns nil if nobody is authenticated
func GetIdentity(ctx context.Context) *model.Identity {
	ident, _ := ctx.Value(identityContextKey).(*model.Identity)
	return ident
}

// Auth returns middleware that requires authentication
// Redirects to the room browser if not authenticated
func Auth(verifier identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := identityFromCookie(r, verifier)
			if ident == nil {
				SetFlash(w, "error", "Sign in to do that")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets the identity in context if authenticated, nil otherwise
func OptionalAuth(verifier identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := identityFromCookie(r, verifier)
			ctx := context.WithValue(r.Context(), identityContextKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromCookie(r *http.Request, verifier identity.Verifier) *model.Identity {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	ident, err := verifier.Verify(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return &ident
}
