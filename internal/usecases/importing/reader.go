package importing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/xuri/excelize/v2"
)

// SupportedExtensions lista os formatos aceitos no upload
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// IsSupported indica se a extensão do arquivo é aceita
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ReadRows lê a primeira aba da planilha como linhas de texto.
// A primeira linha retornada é o cabeçalho.
func ReadRows(reader io.Reader, filename string, maxRows int) ([][]string, error) {
	if !IsSupported(filename) {
		return nil, NewImportError(ErrUnsupportedFormat, apiErrors.ErrImportUnsupported, filepath.Ext(filename))
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, NewImportError(ErrUnreadableFile, apiErrors.ErrImportInvalidFile, err.Error())
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(data)
	case ".xls":
		rows, err = readXLS(data, maxRows)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, NewImportError(ErrUnreadableFile, apiErrors.ErrImportInvalidFile, err.Error())
	}

	rows = trimTrailingEmpty(rows)
	if len(rows) < 2 {
		return nil, NewImportError(ErrEmptyFile, apiErrors.ErrImportInvalidFile, "nenhuma linha de dados encontrada")
	}

	if maxRows > 0 && len(rows)-1 > maxRows {
		return nil, NewImportError(ErrTooManyRows, apiErrors.ErrImportTooLarge, fmt.Sprintf("limite de %d linhas", maxRows))
	}

	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	csvReader := csv.NewReader(bytes.NewReader(data))
	csvReader.Comma = detectDelimiter(data)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	return csvReader.ReadAll()
}

// detectDelimiter escolhe ';' quando o cabeçalho usa mais ponto e vírgula do que vírgula
func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

func readXLS(data []byte, maxRows int) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("nenhuma aba encontrada")
	}

	limit := 100000
	if maxRows > 0 {
		// cabeçalho + uma linha extra para detectar o excesso
		limit = maxRows + 2
	}

	return workbook.ReadAllCells(limit), nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("nenhuma aba encontrada")
	}

	return file.GetRows(sheetName)
}

// trimTrailingEmpty remove linhas vazias do fim da planilha
func trimTrailingEmpty(rows [][]string) [][]string {
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
