package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-food-reviews/internal/models"
	"github.com/pribylovaa/go-food-reviews/internal/service"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/apierrors"
)

type claimsKey struct{}

// ClaimsFrom достаёт проверенные claims из контекста запроса.
// Присутствуют только после RequireAuth.
func ClaimsFrom(ctx context.Context) (*models.Claims, bool) {
	if v := ctx.Value(claimsKey{}); v != nil {
		if c, ok := v.(*models.Claims); ok && c != nil {
			return c, true
		}
	}

	return nil, false
}

// TokenVerifier — контракт проверки access-токена (реализует service.Service).
type TokenVerifier interface {
	ValidateToken(ctx context.Context, accessToken string) (*models.Claims, error)
}

// RequireAuth закрывает маршрут bearer-токеном:
//   - нет заголовка Authorization: Bearer <...> -> 403 missing_credential;
//   - токен не прошёл проверку -> 403 invalid_token;
//   - успех -> claims в request-scoped контексте, дальше по цепочке.
//
// Побочных эффектов, кроме записи claims в контекст, нет: ни продления
// токена, ни аудита.
func RequireAuth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, fmt.Errorf("auth: %w", service.ErrMissingCredential))
				return
			}

			claims, err := verifier.ValidateToken(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из Authorization: Bearer <token>.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
