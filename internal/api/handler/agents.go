package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/agent"
	"github.com/vfg2006/agent-performance-api/internal/usecases/performance"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

// ListAgents lista os agentes ordenados pelo nome, com filtro opcional por categoria
func ListAgents(service agent.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var filter domain.AgentFilter
		if category := r.URL.Query().Get("category"); category != "" {
			c := domain.AgentCategory(category)
			filter.Category = &c
		}

		agents, err := service.ListAgents(r.Context(), filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar agentes")
			writeServiceError(w, err, "Erro ao listar agentes")
			return
		}

		if agents == nil {
			agents = []domain.Agent{}
		}

		utils.WriteJSON(w, http.StatusOK, agents)
	})
}

func GetAgent(service agent.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		found, err := service.GetAgent(r.Context(), id)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("agent_id", id).Error("Erro ao buscar agente")
			writeServiceError(w, err, "Erro ao buscar agente")
			return
		}

		utils.WriteJSON(w, http.StatusOK, found)
	})
}

func CreateAgent(service agent.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateAgent")

		var request domain.UpsertAgentRequest
		if err := utils.DecodeJSON(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		created, err := service.CreateAgent(r.Context(), &request)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao criar agente")
			writeServiceError(w, err, "Erro ao criar agente")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, created)
	})
}

func UpdateAgent(service agent.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateAgent")

		var request domain.UpsertAgentRequest
		if err := utils.DecodeJSON(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		// O ID da URL prevalece sobre o corpo
		request.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		updated, err := service.UpdateAgent(r.Context(), &request)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("agent_id", request.ID).Error("Erro ao atualizar agente")
			writeServiceError(w, err, "Erro ao atualizar agente")
			return
		}

		utils.WriteJSON(w, http.StatusOK, updated)
	})
}

func DeleteAgent(service agent.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteAgent")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteAgent(r.Context(), id); err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("agent_id", id).Error("Erro ao excluir agente")
			writeServiceError(w, err, "Erro ao excluir agente")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// GetAgentStats retorna o histórico do agente; month vazio ou Tümü considera todos os meses
func GetAgentStats(service performance.PerformanceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		month := r.URL.Query().Get("month")

		stats, err := service.AgentStats(r.Context(), id, month)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("agent_id", id).Error("Erro ao calcular estatísticas do agente")
			writeServiceError(w, err, "Erro ao calcular estatísticas do agente")
			return
		}

		utils.WriteJSON(w, http.StatusOK, stats)
	})
}
