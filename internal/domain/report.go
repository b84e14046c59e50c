package domain

import (
	"time"

	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

// AllMonths é o rótulo usado pelo painel para "todos os meses"
const AllMonths = "Tümü"

// Counters agrupa os sete contadores semanais de um relatório
type Counters struct {
	IncomingData int `json:"incoming_data"`
	Contacted    int `json:"contacted"`
	Unreachable  int `json:"unreachable"`
	NoAnswer     int `json:"no_answer"`
	Rejected     int `json:"rejected"`
	Negative     int `json:"negative"`
	Appointments int `json:"appointments"`
}

// Add retorna a soma campo a campo dos contadores
func (c Counters) Add(other Counters) Counters {
	return Counters{
		IncomingData: c.IncomingData + other.IncomingData,
		Contacted:    c.Contacted + other.Contacted,
		Unreachable:  c.Unreachable + other.Unreachable,
		NoAnswer:     c.NoAnswer + other.NoAnswer,
		Rejected:     c.Rejected + other.Rejected,
		Negative:     c.Negative + other.Negative,
		Appointments: c.Appointments + other.Appointments,
	}
}

// SalesRate é appointments / incoming_data * 100 com uma casa decimal
func (c Counters) SalesRate() float64 {
	return utils.PercentageOneDecimal(c.Appointments, c.IncomingData)
}

// ContactRate é contacted / incoming_data * 100 com uma casa decimal
func (c Counters) ContactRate() float64 {
	return utils.PercentageOneDecimal(c.Contacted, c.IncomingData)
}

func (c Counters) IsZero() bool {
	return c == Counters{}
}

type Report struct {
	ID      string    `json:"id"`
	AgentID string    `json:"agent_id"`
	Date    time.Time `json:"date"`
	// Month é um rótulo livre e não é derivado de Date
	Month string `json:"month"`
	Week  int    `json:"week"`
	Counters
	// ReportedSalesRate é o valor gravado na importação; a taxa exibida é sempre recalculada
	ReportedSalesRate *float64  `json:"reported_sales_rate,omitempty"`
	ImportBatchID     *string   `json:"import_batch_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ReportFilter struct {
	Month   string
	AgentID string
}

// HasMonth indica se o filtro restringe o mês
func (f ReportFilter) HasMonth() bool {
	return f.Month != "" && f.Month != AllMonths
}

// WeekOfMonth calcula a semana do mês (1 a 5) a partir do dia
func WeekOfMonth(date time.Time) int {
	return (date.Day() + 6) / 7
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// MonthLabel retorna o rótulo de mês usado nos relatórios para a data
func MonthLabel(date time.Time) string {
	return turkishMonths[date.Month()-1]
}

// MonthLabels retorna todos os rótulos de mês em ordem do calendário
func MonthLabels() []string {
	labels := make([]string, len(turkishMonths))
	copy(labels, turkishMonths[:])
	return labels
}
