package job

import (
	"context"
	"database/sql"
	"errors"

	"taskforge/backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, j *Job) error
	List(ctx context.Context) ([]Job, error)
	Get(ctx context.Context, id int64) (*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, j *Job) error {
	query := `INSERT INTO jobs (title, price, status) VALUES ($1, $2, $3) RETURNING id, status, created_at`
	return database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, j.Title, j.Price, StatusScheduled).Scan(&j.ID, &j.Status, &j.CreatedAt)
	})
}

func (r *PostgresRepo) List(ctx context.Context) ([]Job, error) {
	query := `SELECT id, title, price, status, created_at FROM jobs ORDER BY created_at DESC, id DESC`

	var jobs []Job
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var j Job
			if err := rows.Scan(&j.ID, &j.Title, &j.Price, &j.Status, &j.CreatedAt); err != nil {
				return err
			}
			jobs = append(jobs, j)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (*Job, error) {
	j := &Job{}
	query := `SELECT id, title, price, status, created_at FROM jobs WHERE id = $1`
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, id).Scan(&j.ID, &j.Title, &j.Price, &j.Status, &j.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Update overwrites title and price. status stays whatever creation set.
func (r *PostgresRepo) Update(ctx context.Context, j *Job) error {
	query := `UPDATE jobs SET title = $1, price = $2 WHERE id = $3 RETURNING id, title, price, status, created_at`
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, j.Title, j.Price, j.ID).
			Scan(&j.ID, &j.Title, &j.Price, &j.Status, &j.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM jobs WHERE id = $1`
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
	query := `SELECT COUNT(*) FROM jobs`
	err := database.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query).Scan(&count)
	})
	return count, err
}
