package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/agent-performance-api/pkg/metrics"
)

const contextKeyRoute contextKey = "route"

const unmatchedRoute = "unmatched"

// routeHolder é preenchido pelo roteador com o padrão da rota atendida
type routeHolder struct {
	pattern string
}

// Metrics registra contagem e duração das requisições por rota.
// O rótulo usa o padrão da rota para não criar uma série por ID.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			holder := &routeHolder{pattern: unmatchedRoute}
			r = r.WithContext(context.WithValue(r.Context(), contextKeyRoute, holder))

			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			metrics.HTTPRequestDuration.WithLabelValues(r.Method, holder.pattern).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, holder.pattern, strconv.Itoa(lrw.statusCode)).Inc()
		})
	}
}

// MarkRoute informa ao middleware de métricas qual rota atendeu a requisição
func MarkRoute(pattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if holder, ok := r.Context().Value(contextKeyRoute).(*routeHolder); ok {
				holder.pattern = pattern
			}
			next.ServeHTTP(w, r)
		})
	}
}
