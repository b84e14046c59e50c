package diagnosing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

// InvalidReasons lista as violações de qualidade de um relatório.
// As regras não são impostas na gravação e só aparecem aqui.
func InvalidReasons(report domain.Report) []string {
	var reasons []string

	switch {
	case report.IncomingData < 0:
		reasons = append(reasons, "incoming_data negativo")
	case report.IncomingData == 0:
		reasons = append(reasons, "incoming_data ausente")
	}

	if strings.TrimSpace(report.Month) == "" {
		reasons = append(reasons, "month ausente")
	}

	if report.Week <= 0 {
		reasons = append(reasons, "week ausente")
	}

	// Com incoming_data negativo a comparação de contacted não tem significado
	if report.IncomingData >= 0 && report.Contacted > report.IncomingData {
		reasons = append(reasons, "contacted maior que incoming_data")
	}

	if report.Appointments > report.Contacted {
		reasons = append(reasons, "appointments maior que contacted")
	}

	return reasons
}

func FindInvalidReports(reports []domain.Report) []domain.InvalidReport {
	invalid := make([]domain.InvalidReport, 0)
	for _, report := range reports {
		if reasons := InvalidReasons(report); len(reasons) > 0 {
			invalid = append(invalid, domain.InvalidReport{
				ReportID: report.ID,
				AgentID:  report.AgentID,
				Reasons:  reasons,
			})
		}
	}
	return invalid
}

// FindOrphanedReports devolve os relatórios cujo agente não existe mais
func FindOrphanedReports(agents []domain.Agent, reports []domain.Report) []string {
	known := agentIDs(agents)

	orphans := make([]string, 0)
	for _, report := range reports {
		if _, ok := known[report.AgentID]; !ok {
			orphans = append(orphans, report.ID)
		}
	}
	return orphans
}

func FindAgentsWithoutReports(agents []domain.Agent, reports []domain.Report) []string {
	withReports := make(map[string]struct{}, len(agents))
	for _, report := range reports {
		withReports[report.AgentID] = struct{}{}
	}

	missing := make([]string, 0)
	for _, agent := range agents {
		if _, ok := withReports[agent.ID]; !ok {
			missing = append(missing, agent.ID)
		}
	}
	return missing
}

// FindMonthDrift compara o rótulo de mês com o mês da data do relatório
func FindMonthDrift(reports []domain.Report) []domain.DateDrift {
	drift := make([]domain.DateDrift, 0)
	for _, report := range reports {
		if report.Date.IsZero() || report.Month == "" {
			continue
		}

		expected := domain.MonthLabel(report.Date)
		if strings.EqualFold(expected, report.Month) {
			continue
		}

		drift = append(drift, domain.DateDrift{
			ReportID:      report.ID,
			Month:         report.Month,
			Date:          report.Date.Format(time.DateOnly),
			ExpectedMonth: expected,
		})
	}
	return drift
}

// FindSalesRateMismatches compara a taxa gravada com a recalculada pelos contadores
func FindSalesRateMismatches(reports []domain.Report) []domain.SalesRateMismatch {
	mismatches := make([]domain.SalesRateMismatch, 0)
	for _, report := range reports {
		if report.ReportedSalesRate == nil {
			continue
		}

		computed := report.Counters.SalesRate()
		reported := decimal.NewFromFloat(*report.ReportedSalesRate).Round(1)
		if reported.Equal(decimal.NewFromFloat(computed)) {
			continue
		}

		mismatches = append(mismatches, domain.SalesRateMismatch{
			ReportID: report.ID,
			Reported: *report.ReportedSalesRate,
			Computed: computed,
		})
	}
	return mismatches
}

func agentIDs(agents []domain.Agent) map[string]struct{} {
	ids := make(map[string]struct{}, len(agents))
	for _, agent := range agents {
		ids[agent.ID] = struct{}{}
	}
	return ids
}
