package importing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// Parsed é o resultado da validação das linhas de uma planilha
type Parsed struct {
	Valid      []domain.ImportRow
	Rejected   []domain.RejectedRow
	Mismatches []domain.MonthMismatch
}

// ParseRows valida cada linha de dados contra o schema e os agentes cadastrados.
// rows[0] é o cabeçalho. Linhas inválidas ficam em quarentena e nunca são inseridas.
func ParseRows(rows [][]string, schema *Schema, agents []domain.Agent) (*Parsed, error) {
	if len(rows) == 0 {
		return nil, NewImportError(ErrEmptyFile, apiErrors.ErrImportInvalidFile, "planilha sem cabeçalho")
	}

	layout, err := schema.Resolve(rows[0])
	if err != nil {
		return nil, err
	}

	agentsByName := make(map[string]string, len(agents))
	for _, agent := range agents {
		agentsByName[agentKey(agent.Name)] = agent.ID
	}

	parsed := &Parsed{
		Valid:      make([]domain.ImportRow, 0, len(rows)-1),
		Rejected:   make([]domain.RejectedRow, 0),
		Mismatches: make([]domain.MonthMismatch, 0),
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		// Linha 1 é o cabeçalho
		line := i + 2

		importRow, reasons := parseRow(row, layout, agentsByName)
		if len(reasons) > 0 {
			parsed.Rejected = append(parsed.Rejected, domain.RejectedRow{
				Row:     line,
				Agent:   cellValue(row, layout.index(FieldAgent)),
				Reasons: reasons,
			})
			continue
		}

		importRow.Line = line
		parsed.Valid = append(parsed.Valid, importRow)

		if expected := domain.MonthLabel(importRow.Date); !strings.EqualFold(expected, importRow.Month) {
			parsed.Mismatches = append(parsed.Mismatches, domain.MonthMismatch{
				Row:           line,
				Month:         importRow.Month,
				Date:          importRow.Date.Format(time.DateOnly),
				ExpectedMonth: expected,
			})
		}
	}

	return parsed, nil
}

func (l Layout) index(field Field) int {
	if idx, ok := l[field]; ok {
		return idx
	}
	return -1
}

func parseRow(row []string, layout Layout, agentsByName map[string]string) (domain.ImportRow, []string) {
	var (
		importRow domain.ImportRow
		reasons   []string
	)

	name := cellValue(row, layout.index(FieldAgent))
	switch agentID, ok := agentsByName[agentKey(name)]; {
	case name == "":
		reasons = append(reasons, "agente não informado")
	case !ok:
		reasons = append(reasons, fmt.Sprintf("agente desconhecido: %s", name))
	default:
		importRow.AgentID = agentID
	}

	rawDate := cellValue(row, layout.index(FieldDate))
	if rawDate == "" {
		reasons = append(reasons, "data não informada")
	} else if date, err := parseCellDate(rawDate); err != nil {
		reasons = append(reasons, fmt.Sprintf("data inválida: %s", rawDate))
	} else {
		importRow.Date = date
		importRow.Week = domain.WeekOfMonth(date)
		importRow.Month = domain.MonthLabel(date)
	}

	if layout.Has(FieldMonth) {
		if month := cellValue(row, layout.index(FieldMonth)); month != "" {
			importRow.Month = month
		}
	}

	values := make([]int, len(counterFields))
	for i, field := range counterFields {
		if !layout.Has(field) {
			continue
		}

		raw := cellValue(row, layout.index(field))
		value, err := parseCounter(raw)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s %s", field, err.Error()))
			continue
		}
		values[i] = value
	}
	importRow.Counters = domain.Counters{
		IncomingData: values[0],
		Contacted:    values[1],
		Unreachable:  values[2],
		NoAnswer:     values[3],
		Rejected:     values[4],
		Negative:     values[5],
		Appointments: values[6],
	}

	if layout.Has(FieldSalesRate) {
		if raw := cellValue(row, layout.index(FieldSalesRate)); raw != "" {
			rate, err := parseRate(raw)
			if err != nil {
				reasons = append(reasons, fmt.Sprintf("sales_rate inválido: %s", raw))
			} else {
				importRow.ReportedSalesRate = &rate
			}
		}
	}

	return importRow, reasons
}

// agentKey normaliza o nome para comparação sem diferenciar maiúsculas
func agentKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// parseCounter aceita apenas inteiros não negativos. Célula vazia em coluna presente é erro.
func parseCounter(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("vazio")
	}

	// Planilhas costumam exportar inteiros como "12.0" ou "12,00"
	number, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil || !number.IsInteger() {
		return 0, fmt.Errorf("não é um número inteiro: %s", raw)
	}
	if number.IsNegative() {
		return 0, fmt.Errorf("negativo: %s", number.String())
	}

	return int(number.IntPart()), nil
}

// parseRate aceita "12.5", "12,5" e "%12,5"
func parseRate(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.Trim(raw, "%"))
	raw = strings.ReplaceAll(raw, ",", ".")

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	if rate.IsNegative() {
		return 0, fmt.Errorf("negativo")
	}

	value, _ := rate.Round(1).Float64()
	return value, nil
}

// parseCellDate aceita os formatos textuais e o número serial de datas do Excel
func parseCellDate(raw string) (time.Time, error) {
	if date, err := utils.ParseDate(raw); err == nil {
		return *date, nil
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < 1 {
		return time.Time{}, utils.ErrInvalidDate
	}

	date, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}
