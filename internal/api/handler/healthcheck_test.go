package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthcheck(t *testing.T) {
	rec := serve(Healthcheck(pingerFunc(func(context.Context) error { return nil })), nil, http.MethodGet, "/healthcheck", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
	}{
		{name: "Banco disponível", expectedStatus: http.StatusOK},
		{name: "Banco indisponível", pingErr: errors.New("connection refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := pingerFunc(func(context.Context) error { return tt.pingErr })

			rec := serve(Healthcheck(pinger), nil, http.MethodGet, "/readiness", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.pingErr != nil {
				assert.Equal(t, apiErrors.ErrCommunication, errorCode(t, rec))
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	rec := serve(Metrics(), nil, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
