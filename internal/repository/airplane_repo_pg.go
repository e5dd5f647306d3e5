package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation = "23505"

	// createLockKey serializes inserts so the count guard sees every committed row.
	createLockKey int64 = 0x41495250
)

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AirplaneRepository interface {
	// Create inserts the airplane unless limit records already exist.
	Create(ctx context.Context, airplane *domain.Airplane, limit int) error
	List(ctx context.Context) ([]domain.Airplane, error)
	Count(ctx context.Context) (int, error)
	EnsureSchema(ctx context.Context) error
}

type PGAirplaneRepository struct {
	db DB
}

func NewAirplaneRepository(db DB) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

const schema = `CREATE TABLE IF NOT EXISTS airplanes (
	id BIGINT PRIMARY KEY CHECK (id > 0),
	passengers BIGINT NOT NULL DEFAULT 0 CHECK (passengers >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (r *PGAirplaneRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create airplanes table: %w", err)
	}
	return nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane, limit int) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create airplane: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, createLockKey); err != nil {
		return fmt.Errorf("lock airplanes: %w", err)
	}

	row := tx.QueryRow(ctx, `INSERT INTO airplanes (id, passengers)
		SELECT $1, $2
		WHERE (SELECT count(*) FROM airplanes) < $3
		RETURNING created_at`, airplane.ID, airplane.Passengers, limit)
	if err = row.Scan(&airplane.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrLimitReached
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyExists
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create airplane: %w", err)
	}
	return nil
}

func (r *PGAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `SELECT id, passengers, created_at FROM airplanes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Passengers, &a.CreatedAt); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM airplanes`).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

var (
	_ AirplaneRepository = (*PGAirplaneRepository)(nil)
	_ DB                 = (*pgxpool.Pool)(nil)
)
