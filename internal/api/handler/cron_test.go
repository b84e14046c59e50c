package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
)

type fakeJob struct {
	triggered int
	status    map[string]any
}

func (f *fakeJob) TriggerManualSync() {
	f.triggered++
}

func (f *fakeJob) GetStatus() map[string]any {
	return f.status
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name           string
		cronType       string
		withInbox      bool
		expectedStatus int
		expectedCode   string
		expectedSheets int
		expectedInbox  int
	}{
		{name: "Importação do Google Sheets", cronType: "sheets", withInbox: true, expectedStatus: http.StatusAccepted, expectedSheets: 1},
		{name: "Diretório de entrada", cronType: "inbox", withInbox: true, expectedStatus: http.StatusAccepted, expectedInbox: 1},
		{name: "Todas", cronType: "all", withInbox: true, expectedStatus: http.StatusAccepted, expectedSheets: 1, expectedInbox: 1},
		{name: "Serviço ausente", cronType: "inbox", expectedStatus: http.StatusInternalServerError, expectedCode: apiErrors.ErrInternalServer},
		{name: "Tipo inválido", cronType: "meta", withInbox: true, expectedStatus: http.StatusBadRequest, expectedCode: apiErrors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheets := &fakeJob{}
			inbox := &fakeJob{}
			services := CronJobServices{SheetsImportSync: sheets}
			if tt.withInbox {
				services.InboxWatcher = inbox
			}

			rec := serve(CronJobs(services), adminSession, http.MethodPost, "/v1/cron/"+tt.cronType+"/run", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
			assert.Equal(t, tt.expectedSheets, sheets.triggered)
			assert.Equal(t, tt.expectedInbox, inbox.triggered)
		})
	}
}

func TestRunCronJob_RequiresAdmin(t *testing.T) {
	sheets := &fakeJob{}

	rec := serve(CronJobs(CronJobServices{SheetsImportSync: sheets}), viewerSession, http.MethodPost, "/v1/cron/sheets/run", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, sheets.triggered)
}

func TestGetCronStatus(t *testing.T) {
	services := CronJobServices{
		SheetsImportSync: &fakeJob{status: map[string]any{"sync_enabled": true, "running": false}},
		InboxWatcher:     &fakeJob{status: map[string]any{"watch_enabled": false}},
	}

	rec := serve(CronJobs(services), adminSession, http.MethodGet, "/v1/cron/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]map[string]any
	decodeBody(t, rec, &status)
	assert.Equal(t, true, status["sheets"]["sync_enabled"])
	assert.Equal(t, false, status["inbox"]["watch_enabled"])
}
