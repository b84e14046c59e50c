package performance

import (
	"fmt"

	"github.com/vfg2006/agent-performance-api/internal/domain"
)

// WeeklyBreakdown agrupa relatórios por mês, semana e categoria do agente.
// Relatórios de agentes desconhecidos entram na categoria "Unknown".
// Os grupos mantêm a ordem da primeira ocorrência.
func WeeklyBreakdown(agents []domain.Agent, reports []domain.Report) []domain.WeeklySummary {
	categories := make(map[string]domain.AgentCategory, len(agents))
	for _, agent := range agents {
		categories[agent.ID] = agent.Category
	}

	type group struct {
		summary domain.WeeklySummary
		agents  map[string]struct{}
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, report := range reports {
		category, ok := categories[report.AgentID]
		if !ok {
			category = domain.AgentCategoryUnknown
		}

		key := fmt.Sprintf("%s-W%d-%s", report.Month, report.Week, category)
		g, ok := groups[key]
		if !ok {
			g = &group{
				summary: domain.WeeklySummary{
					Month:    report.Month,
					Week:     report.Week,
					Category: category,
				},
				agents: make(map[string]struct{}),
			}
			groups[key] = g
			order = append(order, key)
		}

		g.summary.Counters = g.summary.Counters.Add(report.Counters)
		g.agents[report.AgentID] = struct{}{}
	}

	out := make([]domain.WeeklySummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.summary.AgentsCount = len(g.agents)
		g.summary.SalesRate = g.summary.Counters.SalesRate()
		out = append(out, g.summary)
	}

	return out
}

// ReportViews associa cada relatório ao seu agente e recalcula a taxa a partir dos contadores
func ReportViews(agents []domain.Agent, reports []domain.Report) []domain.ReportView {
	byID := make(map[string]domain.Agent, len(agents))
	for _, agent := range agents {
		byID[agent.ID] = agent
	}

	views := make([]domain.ReportView, 0, len(reports))
	for _, report := range reports {
		view := domain.ReportView{
			Report:        report,
			AgentCategory: domain.AgentCategoryUnknown,
			SalesRate:     report.Counters.SalesRate(),
		}
		if agent, ok := byID[report.AgentID]; ok {
			view.AgentName = agent.Name
			view.AgentCategory = agent.Category
		}
		views = append(views, view)
	}

	return views
}

// FilterByCategory mantém apenas os relatórios cujo agente pertence à categoria
func FilterByCategory(agents []domain.Agent, reports []domain.Report, category domain.AgentCategory) []domain.Report {
	ids := make(map[string]struct{})
	for _, agent := range agents {
		if agent.Category == category {
			ids[agent.ID] = struct{}{}
		}
	}

	out := make([]domain.Report, 0, len(reports))
	for _, report := range reports {
		if _, ok := ids[report.AgentID]; ok {
			out = append(out, report)
		}
	}
	return out
}
