package lead

import (
	"context"
	"database/sql"
	"errors"

	"taskforge/backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, l *Lead) error
	List(ctx context.Context) ([]Lead, error)
	Get(ctx context.Context, id int64) (*Lead, error)
	Update(ctx context.Context, l *Lead) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, l *Lead) error {
	query := `INSERT INTO leads (name, phone, message) VALUES ($1, $2, $3) RETURNING id, created_at`
	return database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, l.Name, l.Phone, l.Message).Scan(&l.ID, &l.CreatedAt)
	})
}

func (r *PostgresRepo) List(ctx context.Context) ([]Lead, error) {
	query := `SELECT id, name, phone, message, created_at FROM leads ORDER BY created_at DESC, id DESC`

	var leads []Lead
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var l Lead
			if err := rows.Scan(&l.ID, &l.Name, &l.Phone, &l.Message, &l.CreatedAt); err != nil {
				return err
			}
			leads = append(leads, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (*Lead, error) {
	l := &Lead{}
	query := `SELECT id, name, phone, message, created_at FROM leads WHERE id = $1`
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.Name, &l.Phone, &l.Message, &l.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Update overwrites name, phone and message. id and created_at are never written.
func (r *PostgresRepo) Update(ctx context.Context, l *Lead) error {
	query := `UPDATE leads SET name = $1, phone = $2, message = $3 WHERE id = $4 RETURNING id, name, phone, message, created_at`
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, l.Name, l.Phone, l.Message, l.ID).
			Scan(&l.ID, &l.Name, &l.Phone, &l.Message, &l.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM leads WHERE id = $1`
	return database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM leads`
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query).Scan(&count)
	})
	return count, err
}
