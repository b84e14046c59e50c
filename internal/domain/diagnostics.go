package domain

import "time"

type DiagnosticStatus string

const (
	DiagnosticStatusHealthy DiagnosticStatus = "healthy"
	DiagnosticStatusWarning DiagnosticStatus = "warning"
	DiagnosticStatusError   DiagnosticStatus = "error"
)

type InvalidReport struct {
	ReportID string   `json:"report_id"`
	AgentID  string   `json:"agent_id"`
	Reasons  []string `json:"reasons"`
}

type SalesRateMismatch struct {
	ReportID string  `json:"report_id"`
	Reported float64 `json:"reported"`
	Computed float64 `json:"computed"`
}

type DateDrift struct {
	ReportID      string `json:"report_id"`
	Month         string `json:"month"`
	Date          string `json:"date"`
	ExpectedMonth string `json:"expected_month"`
}

type DiagnosticsReport struct {
	Status              DiagnosticStatus    `json:"status"`
	CheckedAt           time.Time           `json:"checked_at"`
	Reachable           bool                `json:"reachable"`
	TableCounts         map[string]int      `json:"table_counts"`
	OrphanedReports     []string            `json:"orphaned_reports"`
	AgentsWithoutReport []string            `json:"agents_without_reports"`
	InvalidReports      []InvalidReport     `json:"invalid_reports"`
	MonthDrift          []DateDrift         `json:"month_drift"`
	SalesRateMismatches []SalesRateMismatch `json:"sales_rate_mismatches"`
	Issues              []string            `json:"issues"`
	Recommendations     []string            `json:"recommendations"`
}

type SeedResult struct {
	AgentsCreated   int `json:"agents_created"`
	ReportsInserted int `json:"reports_inserted"`
}
