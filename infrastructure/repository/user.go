package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/agent-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	ListUser(ctx context.Context) ([]*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("full_name", "email", "password_hash", "active", "role_id").
		Values(user.FullName, user.Email, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRowContext(ctx, usersSQL, usersArgs...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID})

	if user.FullName != "" {
		queryBuilder = queryBuilder.Set("full_name", user.FullName)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", user.RoleID)
	}

	if user.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", user.DeletedAt)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, usersSQL, usersArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar usuário")
	}

	return ensureAffected(result)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email, "deleted": false})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID, "deleted": false})
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	userSQL, userArgs, err := squirrel.
		Select("id", "full_name", "email", "password_hash", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = r.conn.WithRetry(ctx, "get_user", func(ctx context.Context) error {
		return r.conn.QueryRowContext(ctx, userSQL, userArgs...).Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Active,
			&user.RoleID,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar usuário")
	}

	return &user, nil
}

func (r *userRepository) ListUser(ctx context.Context) ([]*domain.User, error) {
	usersSQL, usersArgs, err := squirrel.
		Select("id", "full_name", "email", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("full_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var users []*domain.User
	err = r.conn.WithRetry(ctx, "list_users", func(ctx context.Context) error {
		rows, err := r.conn.QueryContext(ctx, usersSQL, usersArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = make([]*domain.User, 0)
		for rows.Next() {
			var user domain.User
			if err := rows.Scan(
				&user.ID,
				&user.FullName,
				&user.Email,
				&user.Active,
				&user.RoleID,
				&user.CreatedAt,
				&user.UpdatedAt,
			); err != nil {
				return err
			}
			users = append(users, &user)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar usuários")
	}

	return users, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.conn.WithRetry(ctx, "count_users", func(ctx context.Context) error {
		return r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count)
	})
	if err != nil {
		return 0, errors.Wrap(err, "erro ao contar usuários")
	}

	return count, nil
}
