// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fittrackd/fittrackd/internal/config"
)

// Postgres implements Store over a pgx connection pool.
//
// Email uniqueness is enforced by unique indexes; a concurrent create race is
// decided by the database, and the losing insert is mapped to
// ErrDuplicateEmail.
type Postgres struct {
	pool       *pgxpool.Pool
	bcryptCost int
}

// NewPostgres connects to PostgreSQL and verifies the connection.
// The caller owns the returned store and must Close it on shutdown.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig, bcryptCost int) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Postgres{pool: pool, bcryptCost: bcryptCost}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// schema is applied idempotently at startup. Email uniqueness lives on the
// column: emails are normalized to lowercase before every write and lookup.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             uuid PRIMARY KEY,
	name           text NOT NULL,
	email          text NOT NULL UNIQUE,
	password_hash  text NOT NULL,
	age            integer NOT NULL DEFAULT 0,
	gender         text NOT NULL DEFAULT '',
	height         double precision NOT NULL DEFAULT 0,
	weight         double precision NOT NULL DEFAULT 0,
	activity_level text NOT NULL DEFAULT '',
	goals          text NOT NULL DEFAULT '',
	created_at     timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS admins (
	id            uuid PRIMARY KEY,
	name          text NOT NULL,
	email         text NOT NULL UNIQUE,
	password_hash text NOT NULL,
	role          text NOT NULL DEFAULT 'admin',
	created_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS workout_plans (
	id         uuid PRIMARY KEY,
	user_id    uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	plan_name  text NOT NULL,
	goal       text NOT NULL DEFAULT '',
	level      text NOT NULL,
	workouts   jsonb NOT NULL DEFAULT '[]',
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS workout_plans_user_idx ON workout_plans (user_id);

CREATE TABLE IF NOT EXISTS nutrition_plans (
	id         uuid PRIMARY KEY,
	user_id    uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	plan_name  text NOT NULL,
	goal       text NOT NULL DEFAULT '',
	calories   double precision NOT NULL DEFAULT 0,
	macros     jsonb NOT NULL DEFAULT '{}',
	meals      jsonb NOT NULL DEFAULT '[]',
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS nutrition_plans_user_idx ON nutrition_plans (user_id);

CREATE TABLE IF NOT EXISTS health_metrics (
	id             uuid PRIMARY KEY,
	user_id        uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	date           timestamptz NOT NULL DEFAULT now(),
	weight         double precision NOT NULL DEFAULT 0,
	height         double precision NOT NULL DEFAULT 0,
	activity_level text NOT NULL DEFAULT '',
	daily_steps    integer NOT NULL DEFAULT 0,
	sleep_hours    double precision NOT NULL DEFAULT 0,
	water_intake   double precision NOT NULL DEFAULT 0,
	food_log       jsonb NOT NULL DEFAULT '[]',
	workout_log    jsonb NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS health_metrics_user_idx ON health_metrics (user_id);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-index violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// validID reports whether id parses as a UUID. Malformed ids short-circuit to
// not-found instead of surfacing a database cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

const userColumns = `id, name, email, password_hash, age, gender, height, weight, activity_level, goals, created_at`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{Role: RoleUser}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.Gender,
		&u.Height, &u.Weight, &u.ActivityLevel, &u.Goals, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// CreateUser hashes the password and inserts the user. A duplicate email,
// including the losing side of a concurrent signup, yields ErrDuplicateEmail.
func (p *Postgres) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	hash, err := HashPassword(params.Password, p.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:            uuid.NewString(),
		Name:          params.Name,
		Email:         NormalizeEmail(params.Email),
		PasswordHash:  hash,
		Age:           params.Age,
		Gender:        params.Gender,
		Height:        params.Height,
		Weight:        params.Weight,
		ActivityLevel: params.ActivityLevel,
		Goals:         params.Goals,
		Role:          RoleUser,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age, u.Gender,
		u.Height, u.Weight, u.ActivityLevel, u.Goals, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

// FindUserByEmail looks up a user by normalized email.
func (p *Postgres) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, NormalizeEmail(email))
	return scanUser(row)
}

// FindUserByID looks up a user by id.
func (p *Postgres) FindUserByID(ctx context.Context, id string) (*User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateUser updates profile fields only; the stored hash is left untouched.
func (p *Postgres) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = $2, age = $3, gender = $4, height = $5, weight = $6, activity_level = $7, goals = $8
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, params.Name, params.Age, params.Gender, params.Height, params.Weight,
		params.ActivityLevel, params.Goals)
	return scanUser(row)
}

// UpdateUserPassword re-hashes the plaintext and replaces the stored hash.
func (p *Postgres) UpdateUserPassword(ctx context.Context, id, password string) error {
	if !validID(id) {
		return ErrNotFound
	}
	hash, err := HashPassword(password, p.bcryptCost)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user and, via cascade, their fitness records.
func (p *Postgres) DeleteUser(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := p.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns all users ordered by creation time.
func (p *Postgres) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const adminColumns = `id, name, email, password_hash, role, created_at`

func scanAdmin(row pgx.Row) (*Admin, error) {
	a := &Admin{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// CreateAdmin hashes the password and inserts the admin.
func (p *Postgres) CreateAdmin(ctx context.Context, params CreateAdminParams) (*Admin, error) {
	hash, err := HashPassword(params.Password, p.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = RoleAdmin
	}

	a := &Admin{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        NormalizeEmail(params.Email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO admins (`+adminColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

// FindAdminByEmail looks up an admin by normalized email.
func (p *Postgres) FindAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = $1`, NormalizeEmail(email))
	return scanAdmin(row)
}

// FindAdminByID looks up an admin by id.
func (p *Postgres) FindAdminByID(ctx context.Context, id string) (*Admin, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

// UpdateAdmin updates name, email and role; the stored hash is left untouched.
func (p *Postgres) UpdateAdmin(ctx context.Context, id string, params UpdateAdminParams) (*Admin, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`UPDATE admins SET name = $2, email = $3, role = $4 WHERE id = $1
		 RETURNING `+adminColumns,
		id, params.Name, NormalizeEmail(params.Email), params.Role)
	a, err := scanAdmin(row)
	if err != nil && isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	return a, err
}

// DeleteAdmin removes an admin account.
func (p *Postgres) DeleteAdmin(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := p.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAdmins returns all admins ordered by creation time.
func (p *Postgres) ListAdmins(ctx context.Context) ([]*Admin, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var admins []*Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
