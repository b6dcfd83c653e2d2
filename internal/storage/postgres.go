package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pricetracker/internal/domain"
)

const uniqueViolation = "23505"

// PostgresStore handles interactions with the PostgreSQL database.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// InitSchema creates the product and price_history tables if absent.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS product (
			product_id SERIAL PRIMARY KEY,
			site       TEXT NOT NULL,
			url        TEXT NOT NULL,
			name       TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT uq_product_site_url UNIQUE (site, url)
		);
		CREATE TABLE IF NOT EXISTS price_history (
			id            BIGSERIAL PRIMARY KEY,
			product_id    INTEGER NOT NULL REFERENCES product(product_id),
			ts_utc        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			price_numeric NUMERIC(12,2),
			currency      TEXT,
			in_stock_bool BOOLEAN,
			on_sale_bool  BOOLEAN,
			source_hash   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_price_history_product_ts
			ON price_history (product_id, ts_utc);
	`)
	if err != nil {
		return classify(err)
	}
	return nil
}

// GetProductByKey looks up a product by its (site, url) identity.
func (s *PostgresStore) GetProductByKey(ctx context.Context, site, url string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRow(ctx,
		`SELECT product_id, site, url, COALESCE(name, ''), created_at
		 FROM product WHERE site = $1 AND url = $2`,
		site, url,
	).Scan(&p.ProductID, &p.Site, &p.URL, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

// InsertProduct creates a new product row and returns its id. A concurrent
// insert of the same (site, url) surfaces as ErrUniqueConflict.
func (s *PostgresStore) InsertProduct(ctx context.Context, site, url, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO product (site, url, name) VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING product_id`,
		site, url, name,
	).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// AppendObservation writes one immutable price reading. Rows are never
// updated or deleted afterwards.
func (s *PostgresStore) AppendObservation(ctx context.Context, obs domain.PriceObservation) (int64, error) {
	ts := obs.TS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO price_history (product_id, ts_utc, price_numeric, currency, in_stock_bool, on_sale_bool, source_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		 RETURNING id`,
		obs.ProductID, ts, obs.Price, obs.Currency, obs.InStock, obs.OnSale, obs.SourceHash,
	).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// ListObservations returns a product's observations ordered by capture
// time ascending. A zero since returns the full history.
func (s *PostgresStore) ListObservations(ctx context.Context, productID int64, since time.Time) ([]domain.PriceObservation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, product_id, ts_utc, price_numeric, currency, in_stock_bool, on_sale_bool, COALESCE(source_hash, '')
		 FROM price_history
		 WHERE product_id = $1 AND ($2::timestamptz IS NULL OR ts_utc >= $2)
		 ORDER BY ts_utc ASC, id ASC`,
		productID, nullTime(since),
	)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.PriceObservation
	for rows.Next() {
		var (
			obs      domain.PriceObservation
			currency *string
		)
		if err := rows.Scan(&obs.ID, &obs.ProductID, &obs.TS, &obs.Price, &currency, &obs.InStock, &obs.OnSale, &obs.SourceHash); err != nil {
			return nil, classify(err)
		}
		if currency != nil {
			obs.Currency = *currency
		}
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListProducts returns every tracked product.
func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT product_id, site, url, COALESCE(name, ''), created_at FROM product ORDER BY product_id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.Site, &p.URL, &p.Name, &p.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListTargets derives the ingestion target list from the product table.
func (s *PostgresStore) ListTargets(ctx context.Context) ([]domain.Target, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]domain.Target, 0, len(products))
	for _, p := range products {
		targets = append(targets, domain.Target{Site: p.Site, URL: p.URL, Name: p.Name})
	}
	return targets, nil
}

// SeedTargets inserts tracked URLs that are not yet present. Existing rows
// are left untouched, so seeding is idempotent.
func (s *PostgresStore) SeedTargets(ctx context.Context, targets []domain.Target) (int, error) {
	inserted := 0
	for _, t := range targets {
		_, err := s.InsertProduct(ctx, t.Site, t.URL, t.Name)
		if errors.Is(err, ErrUniqueConflict) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// classify maps transport-level failures to ErrUnavailable and unique
// violations to ErrUniqueConflict. Server-reported errors other than the
// uniqueness constraint pass through unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrUniqueConflict, pgErr.ConstraintName)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
