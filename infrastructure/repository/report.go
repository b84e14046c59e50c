package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

const (
	reportsTable       = "reports"
	defaultInsertBatch = 50
)

var reportColumns = []string{
	"id", "agent_id", "date", "month", "week",
	"incoming_data", "contacted", "unreachable", "no_answer", "rejected", "negative", "appointments",
	"reported_sales_rate", "import_batch_id", "created_at",
}

type ReportRepository interface {
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error)
	ListMonths(ctx context.Context) ([]string, error)
	InsertReports(ctx context.Context, reports []domain.Report, batchSize int) (int, error)
	DeleteReport(ctx context.Context, reportID string) error
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

// ListReports retorna os relatórios do mais recente para o mais antigo
func (r *reportRepository) ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	queryBuilder := squirrel.
		Select(reportColumns...).
		From(reportsTable).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.HasMonth() {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"month": filter.Month})
	}

	if filter.AgentID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"agent_id": filter.AgentID})
	}

	reportsSQL, reportsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var reports []domain.Report
	err = r.conn.WithRetry(ctx, "list_reports", func(ctx context.Context) error {
		rows, err := r.conn.QueryContext(ctx, reportsSQL, reportsArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		reports = make([]domain.Report, 0)
		for rows.Next() {
			var report domain.Report
			if err := rows.Scan(
				&report.ID,
				&report.AgentID,
				&report.Date,
				&report.Month,
				&report.Week,
				&report.IncomingData,
				&report.Contacted,
				&report.Unreachable,
				&report.NoAnswer,
				&report.Rejected,
				&report.Negative,
				&report.Appointments,
				&report.ReportedSalesRate,
				&report.ImportBatchID,
				&report.CreatedAt,
			); err != nil {
				return err
			}
			reports = append(reports, report)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar relatórios")
	}

	return reports, nil
}

func (r *reportRepository) ListMonths(ctx context.Context) ([]string, error) {
	monthsSQL, monthsArgs, err := squirrel.
		Select("month").
		From(reportsTable).
		Where(squirrel.NotEq{"month": ""}).
		GroupBy("month").
		OrderBy("MIN(date) ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var months []string
	err = r.conn.WithRetry(ctx, "list_months", func(ctx context.Context) error {
		rows, err := r.conn.QueryContext(ctx, monthsSQL, monthsArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		months = make([]string, 0)
		for rows.Next() {
			var month string
			if err := rows.Scan(&month); err != nil {
				return err
			}
			months = append(months, month)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar meses")
	}

	return months, nil
}

// InsertReports grava os relatórios em lotes dentro de uma única transação.
// Escritas não passam pela política de retentativa.
func (r *reportRepository) InsertReports(ctx context.Context, reports []domain.Report, batchSize int) (int, error) {
	if len(reports) == 0 {
		return 0, nil
	}

	if batchSize <= 0 {
		batchSize = defaultInsertBatch
	}

	inserted := 0
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(reports); start += batchSize {
			end := min(start+batchSize, len(reports))

			n, err := insertReportBatch(ctx, tx, reports[start:end])
			if err != nil {
				return errors.Wrapf(err, "erro ao inserir lote %d-%d", start+1, end)
			}
			inserted += n

			logrus.WithFields(logrus.Fields{
				"batch_start": start + 1,
				"batch_end":   end,
			}).Debug("Lote de relatórios inserido")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func insertReportBatch(ctx context.Context, q postgres.Queryer, batch []domain.Report) (int, error) {
	queryBuilder := squirrel.
		Insert(reportsTable).
		Columns(reportColumns...).
		PlaceholderFormat(squirrel.Dollar)

	now := time.Now()
	for _, report := range batch {
		createdAt := report.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		queryBuilder = queryBuilder.Values(
			report.ID,
			report.AgentID,
			report.Date,
			report.Month,
			report.Week,
			report.IncomingData,
			report.Contacted,
			report.Unreachable,
			report.NoAnswer,
			report.Rejected,
			report.Negative,
			report.Appointments,
			report.ReportedSalesRate,
			report.ImportBatchID,
			createdAt,
		)
	}

	reportsSQL, reportsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx, reportsSQL, reportsArgs...)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}

func (r *reportRepository) DeleteReport(ctx context.Context, reportID string) error {
	reportSQL, reportArgs, err := squirrel.
		Delete(reportsTable).
		Where(squirrel.Eq{"id": reportID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, reportSQL, reportArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao excluir relatório")
	}

	return ensureAffected(result)
}
