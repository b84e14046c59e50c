package performance

import (
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

// BuildAgentStats aplica a mesma agregação a um único agente.
// Mês vazio ou "Tümü" considera todos os meses. Os relatórios devem chegar
// na ordem em que serão exibidos no gráfico. O gráfico tem um ponto por
// (mês, semana); relatórios repetidos da mesma semana são somados.
func BuildAgentStats(agent domain.Agent, reports []domain.Report, month string) domain.AgentStats {
	filter := domain.ReportFilter{Month: month}

	stats := domain.AgentStats{
		Agent:           agent,
		Month:           month,
		Chart:           make([]domain.ChartPoint, 0),
		AvailableMonths: make([]string, 0),
	}

	seenMonths := make(map[string]struct{})
	pointIndex := make(map[chartKey]int)
	var total domain.Counters

	for _, report := range reports {
		if report.AgentID != agent.ID {
			continue
		}

		if _, ok := seenMonths[report.Month]; !ok && report.Month != "" {
			seenMonths[report.Month] = struct{}{}
			stats.AvailableMonths = append(stats.AvailableMonths, report.Month)
		}

		if filter.HasMonth() && report.Month != filter.Month {
			continue
		}

		total = total.Add(report.Counters)
		stats.ReportCount++

		key := chartKey{month: report.Month, week: report.Week}
		if idx, ok := pointIndex[key]; ok {
			point := &stats.Chart[idx]
			point.Counters = point.Counters.Add(report.Counters)
			point.SalesRate = point.Counters.SalesRate()
			continue
		}

		pointIndex[key] = len(stats.Chart)
		stats.Chart = append(stats.Chart, domain.ChartPoint{
			ReportID:  report.ID,
			Date:      report.Date.Format("2006-01-02"),
			Month:     report.Month,
			Week:      report.Week,
			Counters:  report.Counters,
			SalesRate: report.Counters.SalesRate(),
		})
	}

	stats.Totals = domain.TotalsRow{
		Counters:  total,
		SalesRate: total.SalesRate(),
	}
	stats.ContactRate = total.ContactRate()
	stats.Breakdown = AgentBreakdown(total)

	return stats
}

type chartKey struct {
	month string
	week  int
}

// AgentBreakdown divide os contatos de um agente por resultado, sem fatias zeradas ou negativas
func AgentBreakdown(totals domain.Counters) []domain.BreakdownItem {
	return dropEmpty([]domain.BreakdownItem{
		{Name: "appointments", Value: totals.Appointments},
		{Name: "contacted_without_appointment", Value: totals.Contacted - totals.Appointments},
		{Name: "unreachable", Value: totals.Unreachable},
		{Name: "no_answer", Value: totals.NoAnswer},
		{Name: "rejected", Value: totals.Rejected},
		{Name: "negative", Value: totals.Negative},
	})
}
