package domain

// PerformanceFilter seleciona agentes por categoria e relatórios pelo rótulo de mês
type PerformanceFilter struct {
	Category AgentCategory `json:"category"`
	Month    string        `json:"month"`
}

// AggregatedAgentRow é a linha de um agente com a soma dos relatórios filtrados
type AggregatedAgentRow struct {
	Agent Agent `json:"agent"`
	Counters
	SalesRate float64 `json:"sales_rate"`
}

type TotalsRow struct {
	Counters
	SalesRate float64 `json:"sales_rate"`
}

// ChartPoint é um ponto do gráfico histórico de um agente
type ChartPoint struct {
	ReportID string `json:"report_id"`
	Date     string `json:"date"`
	Month    string `json:"month"`
	Week     int    `json:"week"`
	Counters
	SalesRate float64 `json:"sales_rate"`
}

// BreakdownItem é uma fatia do gráfico de distribuição
type BreakdownItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type AgentStats struct {
	Agent           Agent           `json:"agent"`
	Month           string          `json:"month"`
	Totals          TotalsRow       `json:"totals"`
	ContactRate     float64         `json:"contact_rate"`
	ReportCount     int             `json:"report_count"`
	Chart           []ChartPoint    `json:"chart"`
	Breakdown       []BreakdownItem `json:"breakdown"`
	AvailableMonths []string        `json:"available_months"`
	Warnings        []string        `json:"warnings"`
}

// AgentChartItem é a barra de um agente no gráfico do painel
type AgentChartItem struct {
	Name         string  `json:"name"`
	SalesRate    float64 `json:"sales_rate"`
	Appointments int     `json:"appointments"`
	Contacted    int     `json:"contacted"`
	Unreachable  int     `json:"unreachable"`
	NoAnswer     int     `json:"no_answer"`
}

type Dashboard struct {
	Filter       PerformanceFilter    `json:"filter"`
	Rows         []AggregatedAgentRow `json:"rows"`
	Totals       TotalsRow            `json:"totals"`
	ReportCount  int                  `json:"report_count"`
	Chart        []AgentChartItem     `json:"chart"`
	Distribution []BreakdownItem      `json:"distribution"`
	Warnings     []string             `json:"warnings"`
}

// WeeklySummary agrupa relatórios por mês, semana e categoria
type WeeklySummary struct {
	Month       string        `json:"month"`
	Week        int           `json:"week"`
	Category    AgentCategory `json:"category"`
	AgentsCount int           `json:"agents_count"`
	Counters
	SalesRate float64 `json:"sales_rate"`
}

// ReportView é o relatório acompanhado dos dados do agente e da taxa recalculada
type ReportView struct {
	Report
	AgentName     string        `json:"agent_name"`
	AgentCategory AgentCategory `json:"agent_category"`
	SalesRate     float64       `json:"sales_rate"`
}

type ReportList struct {
	Reports  []ReportView    `json:"reports"`
	Weekly   []WeeklySummary `json:"weekly"`
	Totals   TotalsRow       `json:"totals"`
	Warnings []string        `json:"warnings"`
}
