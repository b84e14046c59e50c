package diagnosing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	tableAgents  = "agents"
	tableReports = "reports"
	tableUsers   = "users"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

type Diagnoser interface {
	Diagnose(ctx context.Context) (*domain.DiagnosticsReport, error)
	Seed(ctx context.Context) (*domain.SeedResult, error)
}

type Service struct {
	pinger     Pinger
	agentRepo  repository.AgentRepository
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	seeder     *seeder
	batchSize  int
}

func NewService(
	pinger Pinger,
	agentRepo repository.AgentRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	batchSize int,
) Diagnoser {
	return &Service{
		pinger:     pinger,
		agentRepo:  agentRepo,
		reportRepo: reportRepo,
		userRepo:   userRepo,
		seeder:     newSeeder(uint64(time.Now().UnixNano())),
		batchSize:  batchSize,
	}
}

func (s *Service) Diagnose(ctx context.Context) (*domain.DiagnosticsReport, error) {
	report := &domain.DiagnosticsReport{
		Status:              domain.DiagnosticStatusHealthy,
		CheckedAt:           time.Now().UTC(),
		TableCounts:         make(map[string]int),
		OrphanedReports:     make([]string, 0),
		AgentsWithoutReport: make([]string, 0),
		InvalidReports:      make([]domain.InvalidReport, 0),
		MonthDrift:          make([]domain.DateDrift, 0),
		SalesRateMismatches: make([]domain.SalesRateMismatch, 0),
		Issues:              make([]string, 0),
		Recommendations:     make([]string, 0),
	}

	if err := s.pinger.Ping(ctx); err != nil {
		logrus.WithError(err).Error("Banco de dados inacessível durante o diagnóstico")
		report.Status = domain.DiagnosticStatusError
		report.Issues = append(report.Issues, fmt.Sprintf("Erro de conexão: %s", err.Error()))
		return report, nil
	}
	report.Reachable = true

	var (
		agents                          []domain.Agent
		reports                         []domain.Report
		userCount                       int
		agentsErr, reportsErr, usersErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		agents, agentsErr = s.agentRepo.ListAgents(gctx, domain.AgentFilter{})
		return nil
	})
	g.Go(func() error {
		reports, reportsErr = s.reportRepo.ListReports(gctx, domain.ReportFilter{})
		return nil
	})
	g.Go(func() error {
		userCount, usersErr = s.userRepo.CountUsers(gctx)
		return nil
	})
	_ = g.Wait()

	tableErrors := []struct {
		table string
		err   error
	}{
		{tableAgents, agentsErr},
		{tableReports, reportsErr},
		{tableUsers, usersErr},
	}
	for _, te := range tableErrors {
		if te.err != nil {
			logrus.WithError(te.err).WithField("table", te.table).Error("Erro ao ler tabela durante o diagnóstico")
			report.Status = domain.DiagnosticStatusError
			report.Issues = append(report.Issues, fmt.Sprintf("Erro na tabela %s: %s", te.table, te.err.Error()))
		}
	}

	if agentsErr == nil {
		report.TableCounts[tableAgents] = len(agents)
	}
	if reportsErr == nil {
		report.TableCounts[tableReports] = len(reports)
	}
	if usersErr == nil {
		report.TableCounts[tableUsers] = userCount
	}

	if agentsErr == nil && reportsErr == nil {
		report.OrphanedReports = FindOrphanedReports(agents, reports)
		report.AgentsWithoutReport = FindAgentsWithoutReports(agents, reports)
	}

	if reportsErr == nil {
		report.InvalidReports = FindInvalidReports(reports)
		report.MonthDrift = FindMonthDrift(reports)
		report.SalesRateMismatches = FindSalesRateMismatches(reports)
	}

	summarize(report, agentsErr == nil, reportsErr == nil)

	logrus.WithFields(logrus.Fields{
		"status":          report.Status,
		"issues":          len(report.Issues),
		"recommendations": len(report.Recommendations),
	}).Info("Diagnóstico do banco concluído")

	return report, nil
}

// summarize preenche problemas, recomendações e o status a partir das verificações
func summarize(report *domain.DiagnosticsReport, agentsRead, reportsRead bool) {
	if n := len(report.OrphanedReports); n > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("%d relatórios órfãos encontrados", n))
		report.Recommendations = append(report.Recommendations, "Cadastrar novamente os agentes excluídos ou remover os relatórios órfãos")
	}

	if n := len(report.InvalidReports); n > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("%d relatórios inválidos encontrados", n))
	}

	if n := len(report.MonthDrift); n > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("%d relatórios com mês divergente da data", n))
		report.Recommendations = append(report.Recommendations, "Revisar o rótulo de mês dos relatórios divergentes")
	}

	if n := len(report.SalesRateMismatches); n > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("%d relatórios com taxa de vendas divergente dos contadores", n))
	}

	agentCount := report.TableCounts[tableAgents]
	reportCount := report.TableCounts[tableReports]

	if agentsRead && agentCount == 0 {
		report.Recommendations = append(report.Recommendations, "Criar agentes de exemplo")
	}
	if reportsRead && reportCount == 0 {
		report.Recommendations = append(report.Recommendations, "Criar relatórios de exemplo")
	}
	if agentsRead && reportsRead && agentCount > 0 && reportCount == 0 {
		report.Recommendations = append(report.Recommendations, "Gerar relatórios para os agentes existentes")
	}

	if report.Status == domain.DiagnosticStatusHealthy && len(report.Issues) > 0 {
		report.Status = domain.DiagnosticStatusWarning
	}
}
