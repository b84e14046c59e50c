package importing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de importação
var (
	// Erros de arquivo
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnreadableFile    = errors.New("unreadable spreadsheet")
	ErrEmptyFile         = errors.New("spreadsheet is empty")
	ErrTooManyRows       = errors.New("spreadsheet exceeds row limit")
	ErrMissingColumns    = errors.New("required columns missing")

	// Erros de planilha remota
	ErrSpreadsheetRequired = errors.New("spreadsheet ID is required")
	ErrSheetsUnavailable   = errors.New("google sheets integration is not configured")
	ErrSheetsFetch         = errors.New("error fetching google sheet")

	// Erros de banco de dados
	ErrFetchAgents   = errors.New("error fetching agents from database")
	ErrInsertReports = errors.New("error inserting reports")
	ErrGenerateID    = errors.New("error generating batch ID")
)

// ImportError é um erro com contexto adicional para importações
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImportError(err error, code string, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
