package handler

import (
	"net/http"

	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

// GetDashboard agrega os relatórios por agente para a categoria e o mês informados
func GetDashboard(service performance.PerformanceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := domain.PerformanceFilter{
			Category: domain.AgentCategory(query.Get("category")),
			Month:    query.Get("month"),
		}

		if filter.Category == "" || filter.Month == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros category e month são obrigatórios", nil)
			return
		}

		dashboard, err := service.Dashboard(r.Context(), filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao montar o painel")
			writeServiceError(w, err, "Erro ao montar o painel")
			return
		}

		utils.WriteJSON(w, http.StatusOK, dashboard)
	})
}
