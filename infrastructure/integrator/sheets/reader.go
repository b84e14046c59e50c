package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/pkg/retry"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// ErrMissingCredentials indica que nenhuma credencial de service account foi configurada
var ErrMissingCredentials = errors.New("credenciais do Google Sheets não configuradas")

// Reader lê um intervalo de uma planilha do Google como linhas de texto
type Reader interface {
	ReadRows(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

type GoogleReader struct {
	svc         *gsheet.Service
	retryPolicy retry.Policy
}

var _ Reader = (*GoogleReader)(nil)

// NewGoogleReader cria o cliente com a service account informada em JSON ou arquivo
func NewGoogleReader(ctx context.Context, cfg config.Sheets, retryPolicy retry.Policy) (*GoogleReader, error) {
	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar serviço do Google Sheets: %w", err)
	}

	return &GoogleReader{
		svc:         svc,
		retryPolicy: retryPolicy,
	}, nil
}

func loadCredentials(cfg config.Sheets) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		content, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo de credenciais: %w", err)
		}
		return content, nil
	default:
		return nil, ErrMissingCredentials
	}
}

func (g *GoogleReader) ReadRows(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	var rows [][]string

	err := g.retryPolicy.Do(ctx, "sheets_read", func(ctx context.Context) error {
		resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
		if err != nil {
			var apiErr *googleapi.Error
			// Erros de cliente (planilha inexistente, sem permissão) não são repetidos
			if errors.As(err, &apiErr) && apiErr.Code >= http.StatusBadRequest && apiErr.Code < http.StatusInternalServerError && apiErr.Code != http.StatusTooManyRequests {
				return retry.Permanent(err)
			}
			return err
		}

		rows = toStrings(resp.Values)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"spreadsheet_id": spreadsheetID,
		"range":          rng,
		"rows":           len(rows),
	}).Debug("Planilha do Google lida")

	return rows, nil
}

func toStrings(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell == nil {
				continue
			}
			cells[i] = fmt.Sprint(cell)
		}
		rows = append(rows, cells)
	}
	return rows
}
