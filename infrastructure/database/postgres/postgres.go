package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/pkg/retry"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
	WithRetry(ctx context.Context, name string, op func(ctx context.Context) error) error
}

type Connection struct {
	*sql.DB
	retryPolicy retry.Policy
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
	retryPolicy retry.Policy,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	conn := &Connection{DB: db, retryPolicy: retryPolicy}
	if err := conn.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return conn, nil
}

// Ping é idempotente e por isso passa pela política de retentativa
func (c *Connection) Ping(ctx context.Context) error {
	return c.WithRetry(ctx, "ping", func(ctx context.Context) error {
		return c.DB.PingContext(ctx)
	})
}

// WithRetry aplica a política de retentativa a uma operação de leitura
func (c *Connection) WithRetry(ctx context.Context, name string, op func(ctx context.Context) error) error {
	return c.retryPolicy.Do(ctx, name, op)
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}
