package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/usecases/diagnosing"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

func GetDiagnostics(service diagnosing.Diagnoser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetDiagnostics")

		report, err := service.Diagnose(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao executar diagnóstico")
			writeServiceError(w, err, "Erro ao executar diagnóstico")
			return
		}

		utils.WriteJSON(w, http.StatusOK, report)
	})
}

// SeedDatabase cria os agentes e relatórios de exemplo que ainda não existem
func SeedDatabase(service diagnosing.Diagnoser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SeedDatabase")

		result, err := service.Seed(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao popular o banco")
			writeServiceError(w, err, "Erro ao popular o banco")
			return
		}

		utils.WriteJSON(w, http.StatusOK, result)
	})
}
