package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

// ListReports lista os relatórios com o resumo semanal por mês, semana e categoria
func ListReports(service performance.PerformanceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := domain.ReportFilter{
			Month:   query.Get("month"),
			AgentID: query.Get("agent_id"),
		}

		var category *domain.AgentCategory
		if value := query.Get("category"); value != "" {
			c := domain.AgentCategory(value)
			category = &c
		}

		list, err := service.ListReports(r.Context(), filter, category)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar relatórios")
			writeServiceError(w, err, "Erro ao listar relatórios")
			return
		}

		utils.WriteJSON(w, http.StatusOK, list)
	})
}

func ListMonths(service performance.PerformanceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		months, err := service.ListMonths(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar meses")
			writeServiceError(w, err, "Erro ao listar meses")
			return
		}

		if months == nil {
			months = []string{}
		}

		utils.WriteJSON(w, http.StatusOK, months)
	})
}

func DeleteReport(service performance.PerformanceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteReport")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteReport(r.Context(), id); err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("report_id", id).Error("Erro ao excluir relatório")
			writeServiceError(w, err, "Erro ao excluir relatório")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
