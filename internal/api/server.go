package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/api/handler"
	"github.com/vfg2006/agent-performance-api/internal/api/handler/router"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/usecases/agent"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/internal/usecases/diagnosing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	cleanup    []func() error
}

// Services reúne os casos de uso expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Agents        agent.AgentService
	Performance   performance.PerformanceService
	Importer      importing.Importer
	Diagnoser     diagnosing.Diagnoser
	Pinger        handler.Pinger
	CronJobs      handler.CronJobServices
}

func New(config *config.Config, services Services) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta as rotas e a cadeia global de middlewares
func NewHandler(config *config.Config, services Services) http.Handler {
	routes := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(services.Pinger)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Agents(services.Agents, services.Performance)...),
		router.WithRoutes(handler.Reports(services.Performance)...),
		router.WithRoutes(handler.Import(services.Importer, config.Import.MaxUploadMB)...),
		router.WithRoutes(handler.Diagnostics(services.Diagnoser)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	}

	if config.Metrics.Enabled {
		routes = append(routes, router.WithRoutes(handler.Metrics()...))
	}

	rt := router.New(routes...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.Metrics(),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

// OnShutdown registra uma limpeza executada depois que o servidor HTTP para
func (s *Server) OnShutdown(fn func() error) {
	s.cleanup = append(s.cleanup, fn)
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	// Conexões são fechadas na ordem inversa do registro
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		if err := s.cleanup[i](); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}

	return nil
}
