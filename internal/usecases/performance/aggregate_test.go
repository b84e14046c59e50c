package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

const (
	categoryX = domain.AgentCategory("X")
	categoryY = domain.AgentCategory("Y")
)

func report(id, agentID, month string, c domain.Counters) domain.Report {
	return domain.Report{ID: id, AgentID: agentID, Month: month, Week: 1, Counters: c}
}

func TestAggregate(t *testing.T) {
	agentA := domain.Agent{ID: "1", Name: "A", Category: categoryX}

	tests := []struct {
		name           string
		agents         []domain.Agent
		reports        []domain.Report
		filter         domain.PerformanceFilter
		expectedRows   []domain.AggregatedAgentRow
		expectedTotals domain.TotalsRow
	}{
		{
			name:   "Um agente com um relatório no mês filtrado",
			agents: []domain.Agent{agentA},
			reports: []domain.Report{
				report("10", "1", "May", domain.Counters{IncomingData: 100, Contacted: 50, Appointments: 10}),
			},
			filter: domain.PerformanceFilter{Category: categoryX, Month: "May"},
			expectedRows: []domain.AggregatedAgentRow{
				{
					Agent:     agentA,
					Counters:  domain.Counters{IncomingData: 100, Contacted: 50, Appointments: 10},
					SalesRate: 10.0,
				},
			},
			expectedTotals: domain.TotalsRow{
				Counters:  domain.Counters{IncomingData: 100, Contacted: 50, Appointments: 10},
				SalesRate: 10.0,
			},
		},
		{
			name:   "Mês sem relatórios gera linha zerada",
			agents: []domain.Agent{agentA},
			reports: []domain.Report{
				report("10", "1", "May", domain.Counters{IncomingData: 100, Contacted: 50, Appointments: 10}),
			},
			filter: domain.PerformanceFilter{Category: categoryX, Month: "June"},
			expectedRows: []domain.AggregatedAgentRow{
				{Agent: agentA},
			},
			expectedTotals: domain.TotalsRow{},
		},
		{
			name:   "Categoria desconhecida não gera linhas",
			agents: []domain.Agent{agentA},
			reports: []domain.Report{
				report("10", "1", "May", domain.Counters{IncomingData: 100}),
			},
			filter:         domain.PerformanceFilter{Category: "Z", Month: "May"},
			expectedRows:   []domain.AggregatedAgentRow{},
			expectedTotals: domain.TotalsRow{},
		},
		{
			name:           "Entradas vazias",
			agents:         nil,
			reports:        nil,
			filter:         domain.PerformanceFilter{Category: categoryX, Month: "May"},
			expectedRows:   []domain.AggregatedAgentRow{},
			expectedTotals: domain.TotalsRow{},
		},
		{
			name:   "Relatório de agente inexistente é ignorado",
			agents: []domain.Agent{agentA},
			reports: []domain.Report{
				report("10", "1", "May", domain.Counters{IncomingData: 10, Contacted: 5, Appointments: 1}),
				report("11", "999", "May", domain.Counters{IncomingData: 1000, Contacted: 900, Appointments: 800}),
			},
			filter: domain.PerformanceFilter{Category: categoryX, Month: "May"},
			expectedRows: []domain.AggregatedAgentRow{
				{
					Agent:     agentA,
					Counters:  domain.Counters{IncomingData: 10, Contacted: 5, Appointments: 1},
					SalesRate: 10.0,
				},
			},
			expectedTotals: domain.TotalsRow{
				Counters:  domain.Counters{IncomingData: 10, Contacted: 5, Appointments: 1},
				SalesRate: 10.0,
			},
		},
		{
			name:   "Taxa arredondada para cima na casa decimal",
			agents: []domain.Agent{agentA},
			reports: []domain.Report{
				// 1/8 = 12.5%; 1/16 = 6.25% -> 6.3
				report("10", "1", "May", domain.Counters{IncomingData: 16, Appointments: 1}),
			},
			filter: domain.PerformanceFilter{Category: categoryX, Month: "May"},
			expectedRows: []domain.AggregatedAgentRow{
				{
					Agent:     agentA,
					Counters:  domain.Counters{IncomingData: 16, Appointments: 1},
					SalesRate: 6.3,
				},
			},
			expectedTotals: domain.TotalsRow{
				Counters:  domain.Counters{IncomingData: 16, Appointments: 1},
				SalesRate: 6.3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, totals := Aggregate(tt.agents, tt.reports, tt.filter)

			assert.Equal(t, tt.expectedRows, rows)
			assert.Equal(t, tt.expectedTotals, totals)
		})
	}
}

func TestAggregate_KeepsInputOrderAndSumsAllCounters(t *testing.T) {
	agents := []domain.Agent{
		{ID: "b", Name: "Zeynep", Category: categoryX},
		{ID: "x", Name: "Outro", Category: categoryY},
		{ID: "a", Name: "Ayşe", Category: categoryX},
	}
	reports := []domain.Report{
		report("1", "a", "Mayıs", domain.Counters{IncomingData: 10, Contacted: 8, Unreachable: 1, NoAnswer: 1, Rejected: 2, Negative: 1, Appointments: 3}),
		report("2", "a", "Mayıs", domain.Counters{IncomingData: 20, Contacted: 10, Unreachable: 3, NoAnswer: 4, Rejected: 1, Negative: 2, Appointments: 5}),
		report("3", "b", "Mayıs", domain.Counters{IncomingData: 5, Contacted: 5, Appointments: 5}),
		report("4", "x", "Mayıs", domain.Counters{IncomingData: 50, Contacted: 50, Appointments: 50}),
	}

	rows, totals := Aggregate(agents, reports, domain.PerformanceFilter{Category: categoryX, Month: "Mayıs"})

	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Agent.ID)
	assert.Equal(t, "a", rows[1].Agent.ID)

	assert.Equal(t, domain.Counters{IncomingData: 30, Contacted: 18, Unreachable: 4, NoAnswer: 5, Rejected: 3, Negative: 3, Appointments: 8}, rows[1].Counters)
	assert.Equal(t, 26.7, rows[1].SalesRate)

	var sum domain.Counters
	for _, row := range rows {
		sum = sum.Add(row.Counters)
	}
	assert.Equal(t, sum, totals.Counters)
}

func TestAggregate_TotalsRateIsNotMeanOfRows(t *testing.T) {
	agents := []domain.Agent{
		{ID: "1", Name: "A", Category: categoryX},
		{ID: "2", Name: "B", Category: categoryX},
	}
	reports := []domain.Report{
		report("10", "1", "May", domain.Counters{IncomingData: 10, Appointments: 5}),
		report("11", "2", "May", domain.Counters{IncomingData: 90, Appointments: 9}),
	}

	rows, totals := Aggregate(agents, reports, domain.PerformanceFilter{Category: categoryX, Month: "May"})

	require.Len(t, rows, 2)
	assert.Equal(t, 50.0, rows[0].SalesRate)
	assert.Equal(t, 10.0, rows[1].SalesRate)

	mean := (rows[0].SalesRate + rows[1].SalesRate) / 2
	assert.Equal(t, 14.0, totals.SalesRate)
	assert.NotEqual(t, mean, totals.SalesRate)
}

func TestAggregate_IsDeterministic(t *testing.T) {
	agents := []domain.Agent{
		{ID: "1", Name: "A", Category: categoryX},
		{ID: "2", Name: "B", Category: categoryX},
	}
	reports := []domain.Report{
		report("10", "1", "May", domain.Counters{IncomingData: 7, Contacted: 3, Appointments: 1}),
		report("11", "2", "May", domain.Counters{IncomingData: 9, Contacted: 4, Appointments: 2}),
	}
	filter := domain.PerformanceFilter{Category: categoryX, Month: "May"}

	rows1, totals1 := Aggregate(agents, reports, filter)
	rows2, totals2 := Aggregate(agents, reports, filter)

	assert.Equal(t, rows1, rows2)
	assert.Equal(t, totals1, totals2)
}

func TestCountMatchingReports(t *testing.T) {
	agents := []domain.Agent{
		{ID: "1", Category: categoryX},
		{ID: "2", Category: categoryY},
	}
	reports := []domain.Report{
		report("10", "1", "May", domain.Counters{}),
		report("11", "1", "June", domain.Counters{}),
		report("12", "2", "May", domain.Counters{}),
		report("13", "3", "May", domain.Counters{}),
	}

	assert.Equal(t, 1, CountMatchingReports(agents, reports, domain.PerformanceFilter{Category: categoryX, Month: "May"}))
}

func TestDistribution_DropsEmptySlices(t *testing.T) {
	items := Distribution(domain.Counters{Contacted: 10, NoAnswer: 0, Unreachable: 3, Rejected: 0, Negative: 1})

	assert.Equal(t, []domain.BreakdownItem{
		{Name: "contacted", Value: 10},
		{Name: "unreachable", Value: 3},
		{Name: "negative", Value: 1},
	}, items)
}

func TestAgentChart(t *testing.T) {
	rows := []domain.AggregatedAgentRow{
		{
			Agent:     domain.Agent{ID: "1", Name: "Adviye"},
			Counters:  domain.Counters{IncomingData: 40, Contacted: 20, Unreachable: 5, NoAnswer: 6, Appointments: 4},
			SalesRate: 10,
		},
	}

	assert.Equal(t, []domain.AgentChartItem{
		{Name: "Adviye", SalesRate: 10, Appointments: 4, Contacted: 20, Unreachable: 5, NoAnswer: 6},
	}, AgentChart(rows))
}
