// Package postgres implements the record store over PostgreSQL using sqlx.
// All repository errors surface as domain.ErrNoUser / ErrNoEntryFound /
// ErrDuplicateUser or a wrapping domain.StoreError; SQL detail never
// crosses the service boundary.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/lib/pq" // register the postgres driver
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute

	pgUniqueViolation = "23505"
)

// Connect opens a pooled connection and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}

// isUniqueViolation reports whether err is a duplicate-key failure.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email         TEXT,
	name          TEXT,
	surname       TEXT,
	active        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS roles (
	id   SMALLINT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS users_roles (
	user_id BIGINT   NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role_id SMALLINT NOT NULL REFERENCES roles(id),
	PRIMARY KEY (user_id, role_id)
);

CREATE TABLE IF NOT EXISTS babies (
	id        BIGSERIAL PRIMARY KEY,
	uniqueid  UUID NOT NULL UNIQUE,
	name      TEXT NOT NULL,
	birthdate DATE NOT NULL,
	userid    BIGINT NOT NULL REFERENCES users(id),
	added_on  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users_babies (
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	baby_id BIGINT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, baby_id)
);

CREATE TABLE IF NOT EXISTS meals (
	id       BIGSERIAL PRIMARY KEY,
	baby_id  BIGINT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
	date     TIMESTAMPTZ NOT NULL,
	quantity SMALLINT,
	elapsed  SMALLINT
);

CREATE TABLE IF NOT EXISTS dreams (
	id        BIGSERIAL PRIMARY KEY,
	baby_id   BIGINT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
	from_date TIMESTAMPTZ NOT NULL,
	to_date   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS weights (
	id      BIGSERIAL PRIMARY KEY,
	baby_id BIGINT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
	date    DATE NOT NULL,
	value   DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS meals_baby_date_idx  ON meals (baby_id, date);
CREATE INDEX IF NOT EXISTS dreams_baby_to_idx   ON dreams (baby_id, to_date);
CREATE INDEX IF NOT EXISTS weights_baby_date_idx ON weights (baby_id, date);
`

const seed = `
INSERT INTO roles (id, name) VALUES (0, 'admin'), (1, 'user'), (2, 'anonymous')
	ON CONFLICT (id) DO NOTHING;

-- Reserved guest row keeps foreign keys honest; the session layer never
-- projects it from storage. The hash is the bcrypt-invalid sentinel.
INSERT INTO users (id, username, password_hash, active) VALUES (1, 'guest', '!', TRUE)
	ON CONFLICT (id) DO NOTHING;
INSERT INTO users_roles (user_id, role_id) VALUES (1, 2)
	ON CONFLICT DO NOTHING;
SELECT setval('users_id_seq', GREATEST((SELECT MAX(id) FROM users), 1));
`

// Bootstrap creates the schema and seed rows when absent. Idempotent.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres bootstrap schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, seed); err != nil {
		return fmt.Errorf("postgres bootstrap seed: %w", err)
	}
	return nil
}
