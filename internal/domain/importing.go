package domain

import "time"

type ImportSource string

const (
	ImportSourceUpload ImportSource = "upload"
	ImportSourceSheets ImportSource = "sheets"
	ImportSourceInbox  ImportSource = "inbox"
)

// ImportRow é a linha da planilha já validada e associada a um agente
type ImportRow struct {
	Line    int
	AgentID string
	Date    time.Time
	Month   string
	Week    int
	Counters
	ReportedSalesRate *float64
}

// RejectedRow é uma linha colocada em quarentena com os motivos da rejeição
type RejectedRow struct {
	Row     int      `json:"row"`
	Agent   string   `json:"agent,omitempty"`
	Reasons []string `json:"reasons"`
}

// MonthMismatch registra uma linha cujo rótulo de mês diverge da data
type MonthMismatch struct {
	Row           int    `json:"row"`
	Month         string `json:"month"`
	Date          string `json:"date"`
	ExpectedMonth string `json:"expected_month"`
}

type ImportResult struct {
	BatchID         string          `json:"batch_id"`
	Source          ImportSource    `json:"source"`
	Inserted        int             `json:"inserted"`
	Rejected        []RejectedRow   `json:"rejected"`
	MonthMismatches []MonthMismatch `json:"month_mismatches"`
	Months          []string        `json:"months"`
}

type SheetImportRequest struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Range         string `json:"range"`
}

// ReportsImportedEvent é publicado após uma importação com linhas inseridas
type ReportsImportedEvent struct {
	BatchID    string       `json:"batch_id"`
	Source     ImportSource `json:"source"`
	Inserted   int          `json:"inserted"`
	Rejected   int          `json:"rejected"`
	Months     []string     `json:"months"`
	OccurredAt time.Time    `json:"occurred_at"`
}
