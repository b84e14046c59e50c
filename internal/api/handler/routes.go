package handler

import (
	"net/http"

	"github.com/vfg2006/agent-performance-api/internal/api/handler/router"
	"github.com/vfg2006/agent-performance-api/internal/usecases/agent"
	"github.com/vfg2006/agent-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/agent-performance-api/internal/usecases/diagnosing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/metrics"
	"github.com/vfg2006/agent-performance-api/pkg/middleware"
)

func Healthcheck(pinger Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/readiness",
			Method:  http.MethodGet,
			Handler: ReadinessHandler(pinger),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/reset-password",
			Method:      http.MethodPost,
			Handler:     ResetPassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Agents(agentService agent.AgentService, performanceService performance.PerformanceService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/agents",
			Method:      http.MethodGet,
			Handler:     ListAgents(agentService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/agents/:id",
			Method:      http.MethodGet,
			Handler:     GetAgent(agentService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/agents/:id/stats",
			Method:      http.MethodGet,
			Handler:     GetAgentStats(performanceService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/agents",
			Method:      http.MethodPost,
			Handler:     CreateAgent(agentService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/agents/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAgent(agentService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/agents/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAgent(agentService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Reports(service performance.PerformanceService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports",
			Method:      http.MethodGet,
			Handler:     ListReports(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/months",
			Method:      http.MethodGet,
			Handler:     ListMonths(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Import(service importing.Importer, maxUploadMB int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/import",
			Method:      http.MethodPost,
			Handler:     ImportReports(service, maxUploadMB),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/import/sheets",
			Method:      http.MethodPost,
			Handler:     ImportSheet(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Diagnostics(service diagnosing.Diagnoser) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/diagnostics",
			Method:      http.MethodGet,
			Handler:     GetDiagnostics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/diagnostics/seed",
			Method:      http.MethodPost,
			Handler:     SeedDatabase(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
