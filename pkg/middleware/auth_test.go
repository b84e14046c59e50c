package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
)

type validatorFunc func(tokenString string) (*domain.Claims, error)

func (f validatorFunc) ValidateToken(tokenString string) (*domain.Claims, error) {
	return f(tokenString)
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestAuthMiddleware(t *testing.T) {
	validator := validatorFunc(func(tokenString string) (*domain.Claims, error) {
		switch tokenString {
		case "valido":
			return &domain.Claims{UserID: 7, UserFullName: "Hande", UserEmail: "hande@example.com", UserRoleID: domain.RoleAgent}, nil
		case "expirado":
			return nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		default:
			return nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "assinatura")
		}
	})

	tests := []struct {
		name           string
		method         string
		path           string
		authorization  string
		expectedStatus int
		expectedCode   string
		expectSession  bool
	}{
		{
			name:           "Rota pública não exige token",
			method:         http.MethodPost,
			path:           "/v1/login",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Preflight passa sem token",
			method:         http.MethodOptions,
			path:           "/v1/agents",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Sem cabeçalho Authorization",
			method:         http.MethodGet,
			path:           "/v1/agents",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Cabeçalho sem Bearer",
			method:         http.MethodGet,
			path:           "/v1/agents",
			authorization:  "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Token expirado",
			method:         http.MethodGet,
			path:           "/v1/agents",
			authorization:  "Bearer expirado",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:           "Token inválido",
			method:         http.MethodGet,
			path:           "/v1/agents",
			authorization:  "Bearer qualquer",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Token válido coloca a sessão no contexto",
			method:         http.MethodGet,
			path:           "/v1/agents",
			authorization:  "Bearer valido",
			expectedStatus: http.StatusOK,
			expectSession:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				session    domain.Session
				hasSession bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				session, hasSession = SessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec).Code)
			}

			assert.Equal(t, tt.expectSession, hasSession)
			if tt.expectSession {
				assert.Equal(t, domain.Session{UserID: 7, FullName: "Hande", Email: "hande@example.com", RoleID: domain.RoleAgent}, session)
			}
		})
	}
}
