package performance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAgentNotFound   = errors.New("agente não encontrado")
	ErrReportNotFound  = errors.New("relatório não encontrado")
	ErrInvalidCategory = errors.New("categoria inválida")
	ErrMissingFilter   = errors.New("categoria e mês são obrigatórios")
)

const (
	warningAgentsUnavailable  = "não foi possível carregar os agentes"
	warningReportsUnavailable = "não foi possível carregar os relatórios"
)

type PerformanceService interface {
	Dashboard(ctx context.Context, filter domain.PerformanceFilter) (*domain.Dashboard, error)
	AgentStats(ctx context.Context, agentID, month string) (*domain.AgentStats, error)
	ListReports(ctx context.Context, filter domain.ReportFilter, category *domain.AgentCategory) (*domain.ReportList, error)
	ListMonths(ctx context.Context) ([]string, error)
	DeleteReport(ctx context.Context, reportID string) error
}

type Service struct {
	agentRepo  repository.AgentRepository
	reportRepo repository.ReportRepository
}

func NewService(agentRepo repository.AgentRepository, reportRepo repository.ReportRepository) PerformanceService {
	return &Service{
		agentRepo:  agentRepo,
		reportRepo: reportRepo,
	}
}

// snapshot é o par de coleções lido do banco para uma consulta
type snapshot struct {
	agents   []domain.Agent
	reports  []domain.Report
	warnings []string
}

// loadSnapshot lê agentes e relatórios em paralelo, uma leitura por coleção.
// Falhas viram avisos e a coleção correspondente fica vazia.
func (s *Service) loadSnapshot(ctx context.Context, agentFilter domain.AgentFilter, reportFilter domain.ReportFilter) snapshot {
	var (
		agents     []domain.Agent
		reports    []domain.Report
		agentsErr  error
		reportsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		agents, agentsErr = s.agentRepo.ListAgents(gctx, agentFilter)
		return nil
	})
	g.Go(func() error {
		reports, reportsErr = s.reportRepo.ListReports(gctx, reportFilter)
		return nil
	})
	_ = g.Wait()

	snap := snapshot{
		agents:   agents,
		reports:  reports,
		warnings: make([]string, 0),
	}

	if agentsErr != nil {
		logrus.WithError(agentsErr).Error("Erro ao carregar agentes para agregação")
		snap.agents = nil
		snap.warnings = append(snap.warnings, warningAgentsUnavailable)
	}

	if reportsErr != nil {
		logrus.WithError(reportsErr).Error("Erro ao carregar relatórios para agregação")
		snap.reports = nil
		snap.warnings = append(snap.warnings, warningReportsUnavailable)
	}

	return snap
}

func (s *Service) Dashboard(ctx context.Context, filter domain.PerformanceFilter) (*domain.Dashboard, error) {
	if filter.Category == "" || filter.Month == "" {
		return nil, ErrMissingFilter
	}

	snap := s.loadSnapshot(ctx, domain.AgentFilter{}, domain.ReportFilter{Month: filter.Month})

	rows, totals := Aggregate(snap.agents, snap.reports, filter)
	metrics.AggregationsTotal.WithLabelValues("dashboard").Inc()

	logrus.WithFields(logrus.Fields{
		"category": filter.Category,
		"month":    filter.Month,
		"rows":     len(rows),
	}).Debug("Painel agregado")

	return &domain.Dashboard{
		Filter:       filter,
		Rows:         rows,
		Totals:       totals,
		ReportCount:  CountMatchingReports(snap.agents, snap.reports, filter),
		Chart:        AgentChart(rows),
		Distribution: Distribution(totals.Counters),
		Warnings:     snap.warnings,
	}, nil
}

func (s *Service) AgentStats(ctx context.Context, agentID, month string) (*domain.AgentStats, error) {
	var (
		agent      *domain.Agent
		reports    []domain.Report
		reportsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		agent, err = s.agentRepo.GetAgentByID(gctx, agentID)
		return err
	})
	g.Go(func() error {
		reports, reportsErr = s.reportRepo.ListReports(gctx, domain.ReportFilter{AgentID: agentID})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if agent == nil {
		return nil, ErrAgentNotFound
	}

	warnings := make([]string, 0)
	if reportsErr != nil {
		logrus.WithError(reportsErr).WithField("agent_id", agentID).Error("Erro ao carregar relatórios do agente")
		reports = nil
		warnings = append(warnings, warningReportsUnavailable)
	}

	stats := BuildAgentStats(*agent, reports, month)
	stats.Warnings = warnings
	metrics.AggregationsTotal.WithLabelValues("agent_stats").Inc()

	return &stats, nil
}

func (s *Service) ListReports(ctx context.Context, filter domain.ReportFilter, category *domain.AgentCategory) (*domain.ReportList, error) {
	if category != nil && !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	snap := s.loadSnapshot(ctx, domain.AgentFilter{}, filter)

	reports := snap.reports
	if category != nil {
		reports = FilterByCategory(snap.agents, reports, *category)
	}

	var total domain.Counters
	for _, report := range reports {
		total = total.Add(report.Counters)
	}

	return &domain.ReportList{
		Reports: ReportViews(snap.agents, reports),
		Weekly:  WeeklyBreakdown(snap.agents, reports),
		Totals: domain.TotalsRow{
			Counters:  total,
			SalesRate: total.SalesRate(),
		},
		Warnings: snap.warnings,
	}, nil
}

func (s *Service) ListMonths(ctx context.Context) ([]string, error) {
	return s.reportRepo.ListMonths(ctx)
}

func (s *Service) DeleteReport(ctx context.Context, reportID string) error {
	err := s.reportRepo.DeleteReport(ctx, reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReportNotFound
	}
	return err
}
