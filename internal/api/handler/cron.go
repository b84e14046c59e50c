package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSheets = "sheets"
	CronJobTypeInbox  = "inbox"
	CronJobTypeAll    = "all"
)

// ManualJob é uma rotina em segundo plano que aceita disparo manual
type ManualJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SheetsImportSync ManualJob
	InboxWatcher     ManualJob
}

func (s CronJobServices) jobs() map[string]ManualJob {
	jobs := make(map[string]ManualJob, 2)
	if s.SheetsImportSync != nil {
		jobs[CronJobTypeSheets] = s.SheetsImportSync
	}
	if s.InboxWatcher != nil {
		jobs[CronJobTypeInbox] = s.InboxWatcher
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.jobs()

		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		case CronJobTypeSheets, CronJobTypeInbox:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
				return
			}
			job.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sheets, inbox, all", nil)
			return
		}

		utils.WriteJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		utils.WriteJSON(w, http.StatusOK, status)
	})
}
