package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// UserRepository defines persistence access for student and admin accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByCredentials resolves the login identifier: registration number
	// for students, admin id for admins.
	GetByCredentials(ctx context.Context, identifier string, isAdmin bool) (*domain.User, error)
	List(ctx context.Context, role *domain.Role) ([]domain.User, error)
	// Deactivate soft-deletes by flipping active to false so historic
	// attendance references stay resolvable.
	Deactivate(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, registration_number, admin_id, password_hash,
        role, admin_level, department, year, active, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO users (id, name, email, registration_number, admin_id, password_hash,
                           role, admin_level, department, year, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.RegistrationNumber,
		user.AdminID,
		user.PasswordHash,
		user.Role,
		user.AdminLevel,
		user.Department,
		user.Year,
		user.Active,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, registration_number=$3, admin_id=$4,
            password_hash=$5, role=$6, admin_level=$7, department=$8, year=$9,
            active=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.RegistrationNumber,
		user.AdminID,
		user.PasswordHash,
		user.Role,
		user.AdminLevel,
		user.Department,
		user.Year,
		user.Active,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByCredentials(ctx context.Context, identifier string, isAdmin bool) (*domain.User, error) {
	if isAdmin {
		return r.fetchSingle(ctx,
			`SELECT `+userColumns+` FROM users WHERE admin_id=$1 AND role='admin'`, identifier)
	}
	return r.fetchSingle(ctx,
		`SELECT `+userColumns+` FROM users WHERE registration_number=$1 AND role='student'`, identifier)
}

func (r *userRepository) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != nil {
		query += ` WHERE role=$1`
		args = append(args, *role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET active=FALSE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, arg), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.RegistrationNumber,
		&user.AdminID,
		&user.PasswordHash,
		&user.Role,
		&user.AdminLevel,
		&user.Department,
		&user.Year,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
