package importing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/agent-performance-api/infrastructure/messaging/amqp"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/metrics"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

type Importer interface {
	Import(ctx context.Context, source domain.ImportSource, filename string, reader io.Reader) (*domain.ImportResult, error)
	ImportSheet(ctx context.Context, request domain.SheetImportRequest) (*domain.ImportResult, error)
}

type Service struct {
	agentRepo    repository.AgentRepository
	reportRepo   repository.ReportRepository
	sheetsReader sheets.Reader
	publisher    amqp.Publisher
	schema       *Schema
	cfg          *config.Config
}

// NewService cria o importador. sheetsReader pode ser nil quando o Google Sheets não está configurado.
func NewService(
	agentRepo repository.AgentRepository,
	reportRepo repository.ReportRepository,
	sheetsReader sheets.Reader,
	publisher amqp.Publisher,
	schema *Schema,
	cfg *config.Config,
) Importer {
	if publisher == nil {
		publisher = amqp.NoopPublisher{}
	}

	return &Service{
		agentRepo:    agentRepo,
		reportRepo:   reportRepo,
		sheetsReader: sheetsReader,
		publisher:    publisher,
		schema:       schema,
		cfg:          cfg,
	}
}

func (s *Service) Import(ctx context.Context, source domain.ImportSource, filename string, reader io.Reader) (*domain.ImportResult, error) {
	rows, err := ReadRows(reader, filename, s.cfg.Import.MaxRows)
	if err != nil {
		logrus.WithError(err).WithField("filename", filename).Warn("Planilha rejeitada na leitura")
		return nil, err
	}

	return s.importRows(ctx, source, rows)
}

func (s *Service) ImportSheet(ctx context.Context, request domain.SheetImportRequest) (*domain.ImportResult, error) {
	if s.sheetsReader == nil {
		return nil, NewImportError(ErrSheetsUnavailable, apiErrors.ErrExternalService, "Configure GOOGLE_SERVICE_ACCOUNT_JSON ou GOOGLE_SERVICE_ACCOUNT_FILE")
	}

	if request.SpreadsheetID == "" {
		return nil, NewImportError(ErrSpreadsheetRequired, apiErrors.ErrMissingRequiredData, "spreadsheet_id é obrigatório")
	}

	if request.Range == "" {
		request.Range = s.cfg.SheetsSync.Range
	}

	rows, err := s.sheetsReader.ReadRows(ctx, request.SpreadsheetID, request.Range)
	if err != nil {
		logrus.WithError(err).WithField("spreadsheet_id", request.SpreadsheetID).Error("Erro ao ler planilha do Google")
		return nil, NewImportError(ErrSheetsFetch, apiErrors.ErrExternalService, "Falha ao ler a planilha do Google")
	}

	rows = trimTrailingEmpty(rows)
	if len(rows) < 2 {
		return nil, NewImportError(ErrEmptyFile, apiErrors.ErrImportInvalidFile, "nenhuma linha de dados encontrada")
	}

	if maxRows := s.cfg.Import.MaxRows; maxRows > 0 && len(rows)-1 > maxRows {
		return nil, NewImportError(ErrTooManyRows, apiErrors.ErrImportTooLarge, fmt.Sprintf("limite de %d linhas", maxRows))
	}

	return s.importRows(ctx, domain.ImportSourceSheets, rows)
}

func (s *Service) importRows(ctx context.Context, source domain.ImportSource, rows [][]string) (*domain.ImportResult, error) {
	agents, err := s.agentRepo.ListAgents(ctx, domain.AgentFilter{})
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar agentes para importação")
		return nil, NewImportError(ErrFetchAgents, apiErrors.ErrDatabaseOperation, "Falha ao carregar agentes")
	}

	parsed, err := ParseRows(rows, s.schema, agents)
	if err != nil {
		return nil, err
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, NewImportError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador do lote")
	}

	reports := toReports(parsed.Valid, batchID)

	inserted := 0
	if len(reports) > 0 {
		inserted, err = s.reportRepo.InsertReports(ctx, reports, s.cfg.Import.BatchSize)
		if err != nil {
			logrus.WithError(err).WithField("batch_id", batchID).Error("Erro ao inserir relatórios importados")
			return nil, NewImportError(ErrInsertReports, apiErrors.ErrDatabaseOperation, "Falha ao gravar relatórios; nenhuma linha foi inserida")
		}
	}

	metrics.ImportRowsTotal.WithLabelValues(string(source), "inserted").Add(float64(inserted))
	metrics.ImportRowsTotal.WithLabelValues(string(source), "rejected").Add(float64(len(parsed.Rejected)))

	result := &domain.ImportResult{
		BatchID:         batchID,
		Source:          source,
		Inserted:        inserted,
		Rejected:        parsed.Rejected,
		MonthMismatches: parsed.Mismatches,
		Months:          distinctMonths(reports),
	}

	logrus.WithFields(logrus.Fields{
		"batch_id":         batchID,
		"source":           source,
		"inserted":         inserted,
		"rejected":         len(parsed.Rejected),
		"month_mismatches": len(parsed.Mismatches),
	}).Info("Importação de relatórios concluída")

	if inserted > 0 {
		s.publish(ctx, result)
	}

	return result, nil
}

// publish não interrompe a importação quando o broker falha
func (s *Service) publish(ctx context.Context, result *domain.ImportResult) {
	event := domain.ReportsImportedEvent{
		BatchID:    result.BatchID,
		Source:     result.Source,
		Inserted:   result.Inserted,
		Rejected:   len(result.Rejected),
		Months:     result.Months,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.PublishReportsImported(ctx, event); err != nil {
		logrus.WithError(err).WithField("batch_id", result.BatchID).Warn("Falha ao publicar evento de importação")
	}
}

func toReports(rows []domain.ImportRow, batchID string) []domain.Report {
	reports := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		batch := batchID
		reports = append(reports, domain.Report{
			ID:                utils.NewUUID(),
			AgentID:           row.AgentID,
			Date:              row.Date,
			Month:             row.Month,
			Week:              row.Week,
			Counters:          row.Counters,
			ReportedSalesRate: row.ReportedSalesRate,
			ImportBatchID:     &batch,
		})
	}
	return reports
}

func distinctMonths(reports []domain.Report) []string {
	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, report := range reports {
		if _, ok := seen[report.Month]; ok {
			continue
		}
		seen[report.Month] = struct{}{}
		months = append(months, report.Month)
	}
	return months
}
