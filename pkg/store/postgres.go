package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/collegegate/collegegate/pkg/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Compile-time interface checks.
var (
	_ UserRepository    = (*pgUserRepository)(nil)
	_ InquiryRepository = (*pgInquiryRepository)(nil)
	_ UserRepository    = (*MemoryUserRepository)(nil)
	_ InquiryRepository = (*MemoryInquiryRepository)(nil)
)

// PostgresStore holds one connection pool shared by the user and
// inquiry repositories. All operations are safe for concurrent use.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database at dsn, verifies the
// connection, and runs pending migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, core.NewTransportError("failed to parse database config", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, core.NewTransportError("failed to reach database", err)
	}
	if err := migrate(dsn); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// migrate runs goose over the embedded migration files. Goose drives
// database/sql, so it gets its own short-lived connection.
func migrate(dsn string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return core.NewTransportError("failed to configure migrations", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return core.NewTransportError("failed to open migration connection", err)
	}
	defer db.Close()
	if err := goose.Up(db, "migrations"); err != nil {
		return core.NewTransportError("failed to run migrations", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Users returns the Postgres-backed user repository.
func (s *PostgresStore) Users() UserRepository {
	return &pgUserRepository{pool: s.pool}
}

// Inquiries returns the Postgres-backed inquiry repository.
func (s *PostgresStore) Inquiries() InquiryRepository {
	return &pgInquiryRepository{pool: s.pool}
}

type pgUserRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, name, email, role, mobile, whatsapp, specialization, student_id, banned, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Mobile, &u.WhatsApp,
		&u.Specialization, &u.StudentID, &u.Banned, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, normalizeEmail(email))
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.NewNotFoundError("user not found: " + email)
	}
	if err != nil {
		return nil, core.NewTransportError("user lookup failed", err)
	}
	return u, nil
}

func (r *pgUserRepository) Save(ctx context.Context, user *User) error {
	if err := prepareUser(user); err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (lower(email)) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			mobile = EXCLUDED.mobile,
			whatsapp = EXCLUDED.whatsapp,
			specialization = EXCLUDED.specialization,
			student_id = EXCLUDED.student_id
		RETURNING id, created_at`,
		user.ID, user.Name, user.Email, user.Role, user.Mobile, user.WhatsApp,
		user.Specialization, user.StudentID, user.Banned, user.CreatedAt)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return core.NewTransportError("user save failed", err)
	}
	return nil
}

func (r *pgUserRepository) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, core.NewTransportError("user list failed", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, core.NewTransportError("user scan failed", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewTransportError("user list failed", err)
	}
	return out, nil
}

func (r *pgUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET banned = $1 WHERE id = $2`, banned, id)
	if err != nil {
		return core.NewTransportError("user update failed", err)
	}
	if tag.RowsAffected() == 0 {
		return core.NewNotFoundError("user not found: " + id)
	}
	return nil
}

type pgInquiryRepository struct {
	pool *pgxpool.Pool
}

const inquiryColumns = `id, student_name, student_id, course, query, status, created_at`

func (r *pgInquiryRepository) Save(ctx context.Context, inquiry *Inquiry) error {
	if err := prepareInquiry(inquiry); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inquiries (`+inquiryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			query = EXCLUDED.query,
			status = EXCLUDED.status`,
		inquiry.ID, inquiry.StudentName, inquiry.StudentID, inquiry.Course,
		inquiry.Query, inquiry.Status, inquiry.CreatedAt)
	if err != nil {
		return core.NewTransportError("inquiry save failed", err)
	}
	return nil
}

func (r *pgInquiryRepository) ListAll(ctx context.Context) ([]Inquiry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries ORDER BY created_at, id`)
	if err != nil {
		return nil, core.NewTransportError("inquiry list failed", err)
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		var q Inquiry
		err := rows.Scan(&q.ID, &q.StudentName, &q.StudentID, &q.Course,
			&q.Query, &q.Status, &q.CreatedAt)
		if err != nil {
			return nil, core.NewTransportError("inquiry scan failed", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewTransportError("inquiry list failed", err)
	}
	return out, nil
}

func (r *pgInquiryRepository) SetStatus(ctx context.Context, id string, status InquiryStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return core.NewTransportError("inquiry update failed", err)
	}
	if tag.RowsAffected() == 0 {
		return core.NewNotFoundError("inquiry not found: " + id)
	}
	return nil
}
