package importing

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"gopkg.in/yaml.v3"
)

// Field é o nome canônico de uma coluna da planilha
type Field string

const (
	FieldAgent        Field = "agent"
	FieldDate         Field = "date"
	FieldMonth        Field = "month"
	FieldIncomingData Field = "incoming_data"
	FieldContacted    Field = "contacted"
	FieldUnreachable  Field = "unreachable"
	FieldNoAnswer     Field = "no_answer"
	FieldRejected     Field = "rejected"
	FieldNegative     Field = "negative"
	FieldAppointments Field = "appointments"
	FieldSalesRate    Field = "sales_rate"
)

// counterFields segue a ordem dos contadores no domínio
var counterFields = []Field{
	FieldIncomingData,
	FieldContacted,
	FieldUnreachable,
	FieldNoAnswer,
	FieldRejected,
	FieldNegative,
	FieldAppointments,
}

//go:embed schema.yaml
var defaultSchema []byte

type Schema struct {
	Required []Field            `yaml:"required"`
	Columns  map[Field][]string `yaml:"columns"`
}

// LoadSchema lê o mapa de colunas embutido ou, quando path é informado, o arquivo indicado
func LoadSchema(path string) (*Schema, error) {
	data := defaultSchema
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao ler schema de importação %s", path)
		}
		data = content
	}

	return ParseSchema(data)
}

func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, errors.Wrap(err, "schema de importação inválido")
	}

	if len(schema.Columns) == 0 {
		return nil, errors.New("schema de importação sem colunas")
	}

	for _, field := range schema.Required {
		if len(schema.Columns[field]) == 0 {
			return nil, fmt.Errorf("campo obrigatório %q sem aliases no schema", field)
		}
	}

	return &schema, nil
}

// Layout associa cada campo canônico ao índice da coluna no cabeçalho
type Layout map[Field]int

func (l Layout) Has(field Field) bool {
	_, ok := l[field]
	return ok
}

// Resolve localiza as colunas do cabeçalho. O alias pode ser o próprio nome canônico.
func (s *Schema) Resolve(header []string) (Layout, error) {
	aliases := make(map[string]Field)
	for field, names := range s.Columns {
		aliases[normalizeHeader(string(field))] = field
		for _, name := range names {
			aliases[normalizeHeader(name)] = field
		}
	}

	layout := make(Layout)
	for i, column := range header {
		field, ok := aliases[normalizeHeader(column)]
		if !ok {
			continue
		}
		// A primeira ocorrência vence
		if _, seen := layout[field]; !seen {
			layout[field] = i
		}
	}

	missing := make([]string, 0)
	for _, field := range s.Required {
		if !layout.Has(field) {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return nil, NewImportError(ErrMissingColumns, apiErrors.ErrImportMissingColumn, strings.Join(missing, ", "))
	}

	return layout, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
}
