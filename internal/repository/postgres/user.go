package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quillpress/identity/internal/model"
)

const userColumns = `id, handle, display_name, role, avatar, bio, pronouns, location, website, extra, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// GetByHandle returns the account for a handle, or model.ErrNotFound when
// no live row matches.
func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*model.AccountRecord, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE handle = $1 AND deleted_at IS NULL`

	account, err := scanAccount(r.db.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by handle: %w", err)
	}

	return account, nil
}

// GetAll returns every live account, ordered by handle.
func (r *UserRepository) GetAll(ctx context.Context) ([]model.AccountRecord, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE deleted_at IS NULL ORDER BY handle`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var accounts []model.AccountRecord
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return accounts, nil
}

// Create inserts a new account and returns the stored record.
func (r *UserRepository) Create(ctx context.Context, account model.AccountRecord) (*model.AccountRecord, error) {
	id := account.ID
	if id == "" {
		id = uuid.NewString()
	}
	role := account.Role
	if role == "" {
		role = model.DefaultRole
	}
	extra := account.Extra
	if extra == nil {
		extra = map[string]any{}
	}

	query := `INSERT INTO users (id, handle, display_name, role, avatar, bio, pronouns, location, website, extra)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		id, account.Handle, account.DisplayName, role,
		account.Avatar, account.Bio, account.Pronouns, account.Location, account.Website,
		extra,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func scanAccount(row pgx.Row) (*model.AccountRecord, error) {
	var account model.AccountRecord
	var id uuid.UUID

	err := row.Scan(
		&id, &account.Handle, &account.DisplayName, &account.Role,
		&account.Avatar, &account.Bio, &account.Pronouns, &account.Location, &account.Website,
		&account.Extra, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	account.ID = id.String()

	return &account, nil
}
