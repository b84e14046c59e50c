package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
)

// SheetsImportSyncConfig representa a configuração da importação periódica do Google Sheets
type SheetsImportSyncConfig struct {
	CronSchedule  string
	SpreadsheetID string
	Range         string
	SyncEnabled   bool
}

// SheetsImportSyncService importa periodicamente a planilha configurada
type SheetsImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              SheetsImportSyncConfig
	importer            importing.Importer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.ImportResult
	lastError           string
}

func NewSheetsImportSyncService(importer importing.Importer, appConfig *config.Config) *SheetsImportSyncService {
	syncConfig := SheetsImportSyncConfig{
		CronSchedule:  appConfig.SheetsSync.CronSchedule,
		SpreadsheetID: appConfig.SheetsSync.SpreadsheetID,
		Range:         appConfig.SheetsSync.Range,
		SyncEnabled:   appConfig.SheetsSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"spreadsheet_id": syncConfig.SpreadsheetID,
		"range":          syncConfig.Range,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração da importação do Google Sheets carregada")

	return &SheetsImportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		importer:  importer,
	}
}

// Start inicia o agendador
func (s *SheetsImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação periódica do Google Sheets desabilitada por configuração")
		return nil
	}

	if s.config.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SYNC_SPREADSHEET_ID não configurado")
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação do Google Sheets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSheet(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação do Google Sheets: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação do Google Sheets")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSheet executa uma importação, ignorando chamadas concorrentes
func (s *SheetsImportSyncService) syncSheet(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação do Google Sheets já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	result, err := s.importer.ImportSheet(ctx, domain.SheetImportRequest{
		SpreadsheetID: s.config.SpreadsheetID,
		Range:         s.config.Range,
	})

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		logrus.WithError(err).WithField("spreadsheet_id", s.config.SpreadsheetID).Error("Erro na importação periódica do Google Sheets")
		s.lastError = err.Error()
		return
	}

	s.lastError = ""
	s.lastResult = result

	logrus.WithFields(logrus.Fields{
		"batch_id": result.BatchID,
		"inserted": result.Inserted,
		"rejected": len(result.Rejected),
		"duration": s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).String(),
	}).Info("Importação periódica do Google Sheets concluída")
}

// TriggerManualSync inicia manualmente uma importação do Google Sheets
func (s *SheetsImportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação do Google Sheets já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando importação manual do Google Sheets")
	go s.syncSheet(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *SheetsImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"spreadsheet_id":         s.config.SpreadsheetID,
		"range":                  s.config.Range,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
	}

	if s.lastResult != nil {
		status["last_batch_id"] = s.lastResult.BatchID
		status["last_inserted"] = s.lastResult.Inserted
		status["last_rejected"] = len(s.lastResult.Rejected)
	}

	return status
}
