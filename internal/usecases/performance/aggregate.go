package performance

import (
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

// Aggregate soma os relatórios de cada agente da categoria filtrada no mês filtrado.
// Agentes sem relatórios aparecem zerados, relatórios de agentes desconhecidos são
// ignorados e a taxa dos totais é recalculada a partir dos contadores somados.
func Aggregate(agents []domain.Agent, reports []domain.Report, filter domain.PerformanceFilter) ([]domain.AggregatedAgentRow, domain.TotalsRow) {
	selected := make([]domain.Agent, 0, len(agents))
	sums := make(map[string]domain.Counters, len(agents))

	for _, agent := range agents {
		if agent.Category != filter.Category {
			continue
		}
		if _, seen := sums[agent.ID]; seen {
			continue
		}
		selected = append(selected, agent)
		sums[agent.ID] = domain.Counters{}
	}

	for _, report := range reports {
		current, ok := sums[report.AgentID]
		if !ok || report.Month != filter.Month {
			continue
		}
		sums[report.AgentID] = current.Add(report.Counters)
	}

	rows := make([]domain.AggregatedAgentRow, 0, len(selected))
	var total domain.Counters

	for _, agent := range selected {
		counters := sums[agent.ID]
		rows = append(rows, domain.AggregatedAgentRow{
			Agent:     agent,
			Counters:  counters,
			SalesRate: counters.SalesRate(),
		})
		total = total.Add(counters)
	}

	return rows, domain.TotalsRow{
		Counters:  total,
		SalesRate: total.SalesRate(),
	}
}

// CountMatchingReports conta os relatórios que entraram na agregação
func CountMatchingReports(agents []domain.Agent, reports []domain.Report, filter domain.PerformanceFilter) int {
	ids := make(map[string]struct{}, len(agents))
	for _, agent := range agents {
		if agent.Category == filter.Category {
			ids[agent.ID] = struct{}{}
		}
	}

	count := 0
	for _, report := range reports {
		if _, ok := ids[report.AgentID]; ok && report.Month == filter.Month {
			count++
		}
	}

	return count
}

// AgentChart monta as barras do gráfico do painel, uma por linha agregada
func AgentChart(rows []domain.AggregatedAgentRow) []domain.AgentChartItem {
	chart := make([]domain.AgentChartItem, 0, len(rows))
	for _, row := range rows {
		chart = append(chart, domain.AgentChartItem{
			Name:         row.Agent.Name,
			SalesRate:    row.SalesRate,
			Appointments: row.Appointments,
			Contacted:    row.Contacted,
			Unreachable:  row.Unreachable,
			NoAnswer:     row.NoAnswer,
		})
	}
	return chart
}

// Distribution monta a pizza de resultados dos totais sem as fatias zeradas
func Distribution(totals domain.Counters) []domain.BreakdownItem {
	return dropEmpty([]domain.BreakdownItem{
		{Name: "contacted", Value: totals.Contacted},
		{Name: "no_answer", Value: totals.NoAnswer},
		{Name: "unreachable", Value: totals.Unreachable},
		{Name: "rejected", Value: totals.Rejected},
		{Name: "negative", Value: totals.Negative},
	})
}

func dropEmpty(items []domain.BreakdownItem) []domain.BreakdownItem {
	out := make([]domain.BreakdownItem, 0, len(items))
	for _, item := range items {
		if item.Value > 0 {
			out = append(out, item)
		}
	}
	return out
}
