package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

// Pinger verifica a disponibilidade do banco
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

// ReadinessHandler responde 503 enquanto o banco não estiver acessível
func ReadinessHandler(pinger Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(r.Context()); err != nil {
			logrus.WithError(err).Warn("Banco indisponível na verificação de prontidão")
			apiErrors.WriteError(w, apiErrors.ErrCommunication, "Banco de dados indisponível", nil)
			return
		}

		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
