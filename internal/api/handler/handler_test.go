package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/api/handler/router"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/middleware"
)

var (
	adminSession  = &domain.Session{UserID: 1, FullName: "Admin", Email: "admin@example.com", RoleID: domain.RoleAdmin}
	agentSession  = &domain.Session{UserID: 2, FullName: "Adviye", Email: "adviye@example.com", RoleID: domain.RoleAgent}
	viewerSession = &domain.Session{UserID: 3, FullName: "Leitor", Email: "viewer@example.com", RoleID: domain.RoleViewer}
)

// serve executa a requisição pelas rotas informadas com a sessão já resolvida
func serve(routes []router.Route, session *domain.Session, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, body)
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), *session))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr apiErrors.APIError
	decodeBody(t, rec, &apiErr)
	return apiErr.Code
}
