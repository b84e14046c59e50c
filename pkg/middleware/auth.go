package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
)

type contextKey string

const contextKeySession contextKey = "session"

// Rotas acessíveis sem token
var publicPaths = map[string]struct{}{
	"/v1/login":    {},
	"/v1/register": {},
	"/healthcheck": {},
	"/readiness":   {},
	"/metrics":     {},
}

// TokenValidator valida o token e devolve as claims do usuário
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// AuthMiddleware resolve a sessão uma única vez e a coloca no contexto da requisição
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, public := publicPaths[r.URL.Path]; public || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cabeçalho Authorization obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer obrigatório", nil)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				if errors.Is(err, authenticating.ErrExpiredToken) {
					apiErrors.WriteError(w, apiErrors.ErrExpiredToken, "Token expirado", nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims.Session())))
		})
	}
}

func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, contextKeySession, session)
}

// SessionFromContext devolve a sessão resolvida pelo AuthMiddleware
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(contextKeySession).(domain.Session)
	return session, ok
}
