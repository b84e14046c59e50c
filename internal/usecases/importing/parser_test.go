package importing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

var testAgents = []domain.Agent{
	{ID: "a1", Name: "Adviye", Category: domain.AgentCategoryInternational},
	{ID: "a2", Name: "Çiğdem Kaya", Category: domain.AgentCategoryDomestic},
}

func testSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := LoadSchema("")
	require.NoError(t, err)
	return schema
}

func TestParseRows_ValidRow(t *testing.T) {
	rows := [][]string{
		{"Agent", "Tarih", "Gelen Data", "Görüşülen", "Ulaşılamadı", "Cevap Vermiyor", "Red", "Olumsuz", "Randevu", "Satış Yüzdesi"},
		{"  adviye ", "14.05.2024", "100", "50", "10", "20", "5", "3", "10", "%10,0"},
	}

	parsed, err := ParseRows(rows, testSchema(t), testAgents)

	require.NoError(t, err)
	require.Len(t, parsed.Valid, 1)
	assert.Empty(t, parsed.Rejected)
	assert.Empty(t, parsed.Mismatches)

	row := parsed.Valid[0]
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "a1", row.AgentID)
	assert.Equal(t, time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, "Mayıs", row.Month)
	assert.Equal(t, 2, row.Week)
	assert.Equal(t, domain.Counters{IncomingData: 100, Contacted: 50, Unreachable: 10, NoAnswer: 20, Rejected: 5, Negative: 3, Appointments: 10}, row.Counters)
	require.NotNil(t, row.ReportedSalesRate)
	assert.Equal(t, 10.0, *row.ReportedSalesRate)
}

func TestParseRows_AbsentColumnsDefaultToZero(t *testing.T) {
	rows := [][]string{
		{"agent", "date", "appointments"},
		{"  çiğdem   KAYA ", "2024-06-30", "3"},
	}

	parsed, err := ParseRows(rows, testSchema(t), testAgents)

	require.NoError(t, err)
	require.Len(t, parsed.Valid, 1)
	assert.Equal(t, domain.Counters{Appointments: 3}, parsed.Valid[0].Counters)
	assert.Equal(t, 5, parsed.Valid[0].Week)
	assert.Nil(t, parsed.Valid[0].ReportedSalesRate)
}

func TestParseRows_RejectsInvalidRows(t *testing.T) {
	rows := [][]string{
		{"Agent", "Tarih", "Gelen Data", "Randevu"},
		{"Ghost", "2024-05-07", "10", "1"},
		{"", "2024-05-07", "10", "1"},
		{"Adviye", "", "10", "1"},
		{"Adviye", "31/31/2024", "10", "1"},
		{"Adviye", "2024-05-07", "", "1"},
		{"Adviye", "2024-05-07", "-4", "abc"},
		{"", "", "", ""},
		{"Adviye", "2024-05-07", "12.0", "1"},
	}

	parsed, err := ParseRows(rows, testSchema(t), testAgents)
	require.NoError(t, err)

	require.Len(t, parsed.Valid, 1)
	assert.Equal(t, 9, parsed.Valid[0].Line)
	assert.Equal(t, 12, parsed.Valid[0].IncomingData)

	expected := []domain.RejectedRow{
		{Row: 2, Agent: "Ghost", Reasons: []string{"agente desconhecido: Ghost"}},
		{Row: 3, Agent: "", Reasons: []string{"agente não informado"}},
		{Row: 4, Agent: "Adviye", Reasons: []string{"data não informada"}},
		{Row: 5, Agent: "Adviye", Reasons: []string{"data inválida: 31/31/2024"}},
		{Row: 6, Agent: "Adviye", Reasons: []string{"incoming_data vazio"}},
		{Row: 7, Agent: "Adviye", Reasons: []string{"incoming_data negativo: -4", "appointments não é um número inteiro: abc"}},
	}
	assert.Equal(t, expected, parsed.Rejected)
}

func TestParseRows_ExplicitMonthColumn(t *testing.T) {
	rows := [][]string{
		{"Agent", "Tarih", "Ay", "Gelen Data"},
		{"Adviye", "2024-05-31", "Mayıs", "10"},
		{"Adviye", "2024-06-01", "Mayıs", "10"},
		{"Adviye", "2024-07-02", "", "10"},
	}

	parsed, err := ParseRows(rows, testSchema(t), testAgents)
	require.NoError(t, err)

	require.Len(t, parsed.Valid, 3)
	assert.Equal(t, "Mayıs", parsed.Valid[0].Month)
	assert.Equal(t, "Mayıs", parsed.Valid[1].Month)
	assert.Equal(t, "Temmuz", parsed.Valid[2].Month)

	assert.Equal(t, []domain.MonthMismatch{
		{Row: 3, Month: "Mayıs", Date: "2024-06-01", ExpectedMonth: "Haziran"},
	}, parsed.Mismatches)
}

func TestParseRows_ExcelSerialDate(t *testing.T) {
	rows := [][]string{
		{"Agent", "Tarih"},
		{"Adviye", "45419"},
	}

	parsed, err := ParseRows(rows, testSchema(t), testAgents)
	require.NoError(t, err)

	require.Len(t, parsed.Valid, 1)
	assert.Equal(t, time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), parsed.Valid[0].Date)
}

func TestParseRows_MissingRequiredColumns(t *testing.T) {
	_, err := ParseRows([][]string{{"Gelen Data"}, {"10"}}, testSchema(t), testAgents)

	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestParseCounter(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
		errMsg   string
	}{
		{raw: "12", expected: 12},
		{raw: "12.0", expected: 12},
		{raw: "12.00", expected: 12},
		{raw: "12,00", expected: 12},
		{raw: "0", expected: 0},
		{raw: "12.5", errMsg: "não é um número inteiro: 12.5"},
		{raw: "abc", errMsg: "não é um número inteiro: abc"},
		{raw: "-4", errMsg: "negativo: -4"},
		{raw: "-4.00", errMsg: "negativo: -4"},
		{raw: "", errMsg: "vazio"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			value, err := parseCounter(tt.raw)
			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
		wantErr  bool
	}{
		{raw: "12.5", expected: 12.5},
		{raw: "12,5", expected: 12.5},
		{raw: "%8,25", expected: 8.3},
		{raw: "7%", expected: 7},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rate, err := parseRate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rate)
		})
	}
}
