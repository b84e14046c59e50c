package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

func TestBuildAgentStats(t *testing.T) {
	agent := domain.Agent{ID: "a1", Name: "Hande", Category: domain.AgentCategoryDomestic}

	reports := []domain.Report{
		{
			ID: "r3", AgentID: "a1", Month: "Haziran", Week: 1,
			Date:     time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
			Counters: domain.Counters{IncomingData: 50, Contacted: 30, Unreachable: 5, NoAnswer: 10, Rejected: 3, Negative: 2, Appointments: 6},
		},
		{
			ID: "r2", AgentID: "a1", Month: "Mayıs", Week: 2,
			Date:     time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
			Counters: domain.Counters{IncomingData: 40, Contacted: 20, Unreachable: 4, NoAnswer: 8, Rejected: 0, Negative: 0, Appointments: 4},
		},
		{
			ID: "r1", AgentID: "a1", Month: "Mayıs", Week: 1,
			Date:     time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC),
			Counters: domain.Counters{IncomingData: 60, Contacted: 30, Unreachable: 6, NoAnswer: 12, Rejected: 0, Negative: 0, Appointments: 6},
		},
		{
			ID: "other", AgentID: "a2", Month: "Mayıs", Week: 1,
			Counters: domain.Counters{IncomingData: 999},
		},
	}

	tests := []struct {
		name             string
		month            string
		expectedCount    int
		expectedTotals   domain.Counters
		expectedRate     float64
		expectedContact  float64
		expectedChartIDs []string
	}{
		{
			name:             "Todos os meses com rótulo Tümü",
			month:            domain.AllMonths,
			expectedCount:    3,
			expectedTotals:   domain.Counters{IncomingData: 150, Contacted: 80, Unreachable: 15, NoAnswer: 30, Rejected: 3, Negative: 2, Appointments: 16},
			expectedRate:     10.7,
			expectedContact:  53.3,
			expectedChartIDs: []string{"r3", "r2", "r1"},
		},
		{
			name:             "Mês vazio também considera todos os meses",
			month:            "",
			expectedCount:    3,
			expectedTotals:   domain.Counters{IncomingData: 150, Contacted: 80, Unreachable: 15, NoAnswer: 30, Rejected: 3, Negative: 2, Appointments: 16},
			expectedRate:     10.7,
			expectedContact:  53.3,
			expectedChartIDs: []string{"r3", "r2", "r1"},
		},
		{
			name:             "Apenas o mês filtrado",
			month:            "Mayıs",
			expectedCount:    2,
			expectedTotals:   domain.Counters{IncomingData: 100, Contacted: 50, Unreachable: 10, NoAnswer: 20, Appointments: 10},
			expectedRate:     10.0,
			expectedContact:  50.0,
			expectedChartIDs: []string{"r2", "r1"},
		},
		{
			name:             "Mês sem relatórios",
			month:            "Ekim",
			expectedCount:    0,
			expectedTotals:   domain.Counters{},
			expectedRate:     0,
			expectedContact:  0,
			expectedChartIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := BuildAgentStats(agent, reports, tt.month)

			assert.Equal(t, agent, stats.Agent)
			assert.Equal(t, tt.expectedCount, stats.ReportCount)
			assert.Equal(t, tt.expectedTotals, stats.Totals.Counters)
			assert.Equal(t, tt.expectedRate, stats.Totals.SalesRate)
			assert.Equal(t, tt.expectedContact, stats.ContactRate)

			ids := make([]string, 0, len(stats.Chart))
			for _, point := range stats.Chart {
				ids = append(ids, point.ReportID)
			}
			assert.Equal(t, tt.expectedChartIDs, ids)

			// Os meses disponíveis independem do filtro
			assert.Equal(t, []string{"Haziran", "Mayıs"}, stats.AvailableMonths)
		})
	}
}

func TestBuildAgentStats_ChartPointRate(t *testing.T) {
	agent := domain.Agent{ID: "a1"}
	reports := []domain.Report{
		{
			ID: "r1", AgentID: "a1", Month: "Temmuz", Week: 3,
			Date:              time.Date(2024, 7, 21, 0, 0, 0, 0, time.UTC),
			Counters:          domain.Counters{IncomingData: 3, Contacted: 2, Appointments: 1},
			ReportedSalesRate: floatPtr(50),
		},
	}

	stats := BuildAgentStats(agent, reports, "Temmuz")

	require.Len(t, stats.Chart, 1)
	assert.Equal(t, "2024-07-21", stats.Chart[0].Date)
	assert.Equal(t, 3, stats.Chart[0].Week)
	// A taxa é sempre recalculada pelos contadores
	assert.Equal(t, 33.3, stats.Chart[0].SalesRate)
}

func TestBuildAgentStats_MergesSameWeek(t *testing.T) {
	agent := domain.Agent{ID: "a1"}
	reports := []domain.Report{
		{
			ID: "r2", AgentID: "a1", Month: "Mayıs", Week: 2,
			Date:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Counters: domain.Counters{IncomingData: 10, Contacted: 5, Appointments: 1},
		},
		{
			ID: "r2-bis", AgentID: "a1", Month: "Mayıs", Week: 2,
			Date:     time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC),
			Counters: domain.Counters{IncomingData: 20, Contacted: 8, Appointments: 2},
		},
		{
			ID: "r1", AgentID: "a1", Month: "Mayıs", Week: 1,
			Date:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			Counters: domain.Counters{IncomingData: 4, Contacted: 2, Appointments: 1},
		},
	}

	stats := BuildAgentStats(agent, reports, "Mayıs")

	require.Len(t, stats.Chart, 2)
	assert.Equal(t, 3, stats.ReportCount)

	merged := stats.Chart[0]
	assert.Equal(t, "r2", merged.ReportID)
	assert.Equal(t, 2, merged.Week)
	assert.Equal(t, domain.Counters{IncomingData: 30, Contacted: 13, Appointments: 3}, merged.Counters)
	assert.Equal(t, 10.0, merged.SalesRate)

	assert.Equal(t, "r1", stats.Chart[1].ReportID)
	assert.Equal(t, 34, stats.Totals.IncomingData)
}

func TestAgentBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		totals   domain.Counters
		expected []domain.BreakdownItem
	}{
		{
			name:   "Todas as fatias",
			totals: domain.Counters{Contacted: 20, Appointments: 5, Unreachable: 3, NoAnswer: 4, Rejected: 2, Negative: 1},
			expected: []domain.BreakdownItem{
				{Name: "appointments", Value: 5},
				{Name: "contacted_without_appointment", Value: 15},
				{Name: "unreachable", Value: 3},
				{Name: "no_answer", Value: 4},
				{Name: "rejected", Value: 2},
				{Name: "negative", Value: 1},
			},
		},
		{
			name:   "Fatias zeradas e negativas são removidas",
			totals: domain.Counters{Contacted: 2, Appointments: 5, NoAnswer: 1},
			expected: []domain.BreakdownItem{
				{Name: "appointments", Value: 5},
				{Name: "no_answer", Value: 1},
			},
		},
		{
			name:     "Sem dados",
			totals:   domain.Counters{},
			expected: []domain.BreakdownItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgentBreakdown(tt.totals))
		})
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
