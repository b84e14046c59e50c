package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/agent-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

const agentsTable = "agents"

var agentColumns = []string{"id", "name", "category", "email", "notes", "active", "created_at", "updated_at"}

// ErrDuplicateAgent indica violação da unicidade de nome ou email
var ErrDuplicateAgent = errors.New("agente duplicado")

type AgentRepository interface {
	ListAgents(ctx context.Context, filter domain.AgentFilter) ([]domain.Agent, error)
	GetAgentByID(ctx context.Context, agentID string) (*domain.Agent, error)
	CreateAgent(ctx context.Context, agent *domain.Agent) error
	UpdateAgent(ctx context.Context, agent *domain.Agent) error
	DeleteAgent(ctx context.Context, agentID string) error
}

type agentRepository struct {
	conn *postgres.Connection
}

func NewAgentRepository(conn *postgres.Connection) AgentRepository {
	return &agentRepository{
		conn: conn,
	}
}

func (r *agentRepository) ListAgents(ctx context.Context, filter domain.AgentFilter) ([]domain.Agent, error) {
	queryBuilder := squirrel.
		Select(agentColumns...).
		From(agentsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Category != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}

	agentsSQL, agentsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var agents []domain.Agent
	err = r.conn.WithRetry(ctx, "list_agents", func(ctx context.Context) error {
		rows, err := r.conn.QueryContext(ctx, agentsSQL, agentsArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		agents = make([]domain.Agent, 0)
		for rows.Next() {
			agent, err := scanAgent(rows)
			if err != nil {
				return err
			}
			agents = append(agents, *agent)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar agentes")
	}

	return agents, nil
}

func (r *agentRepository) GetAgentByID(ctx context.Context, agentID string) (*domain.Agent, error) {
	agentSQL, agentArgs, err := squirrel.
		Select(agentColumns...).
		From(agentsTable).
		Where(squirrel.Eq{"id": agentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var agent *domain.Agent
	err = r.conn.WithRetry(ctx, "get_agent", func(ctx context.Context) error {
		found, err := scanAgent(r.conn.QueryRowContext(ctx, agentSQL, agentArgs...))
		if err != nil {
			return err
		}
		agent = found
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar agente")
	}

	return agent, nil
}

func (r *agentRepository) CreateAgent(ctx context.Context, agent *domain.Agent) error {
	now := time.Now()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	agentSQL, agentArgs, err := squirrel.
		Insert(agentsTable).
		Columns(agentColumns...).
		Values(agent.ID, agent.Name, agent.Category, agent.Email, agent.Notes, agent.Active, agent.CreatedAt, agent.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, agentSQL, agentArgs...); err != nil {
		return translateAgentError(err)
	}

	return nil
}

func (r *agentRepository) UpdateAgent(ctx context.Context, agent *domain.Agent) error {
	agent.UpdatedAt = time.Now()

	agentSQL, agentArgs, err := squirrel.
		Update(agentsTable).
		Set("name", agent.Name).
		Set("category", agent.Category).
		Set("email", agent.Email).
		Set("notes", agent.Notes).
		Set("active", agent.Active).
		Set("updated_at", agent.UpdatedAt).
		Where(squirrel.Eq{"id": agent.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, agentSQL, agentArgs...)
	if err != nil {
		return translateAgentError(err)
	}

	return ensureAffected(result)
}

func (r *agentRepository) DeleteAgent(ctx context.Context, agentID string) error {
	agentSQL, agentArgs, err := squirrel.
		Delete(agentsTable).
		Where(squirrel.Eq{"id": agentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, agentSQL, agentArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao excluir agente")
	}

	return ensureAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	agent := &domain.Agent{}

	if err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Category,
		&agent.Email,
		&agent.Notes,
		&agent.Active,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return agent, nil
}

func translateAgentError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateAgent
	}
	return errors.Wrap(err, "erro ao gravar agente")
}

// ensureAffected devolve sql.ErrNoRows quando nenhuma linha foi alterada
func ensureAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
