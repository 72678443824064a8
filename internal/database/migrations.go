package database

import "database/sql"

// schema contains the statements that set up the database. They run at
// startup and are idempotent. Friends must exist before transactions
// because of the payer foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id               SERIAL PRIMARY KEY,
	username         TEXT NOT NULL,
	email            TEXT NOT NULL UNIQUE,
	password_hash    TEXT NOT NULL,
	avatar_url       TEXT,
	default_currency TEXT NOT NULL DEFAULT 'USD',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS friends (
	id             SERIAL PRIMARY KEY,
	owner_id       INT NOT NULL REFERENCES users(id),
	linked_user_id INT REFERENCES users(id),
	name           TEXT NOT NULL,
	email          TEXT,
	phone          TEXT,
	is_dummy       BOOLEAN NOT NULL DEFAULT FALSE,
	is_self        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS friends_one_self_per_owner ON friends(owner_id) WHERE is_self;
CREATE INDEX IF NOT EXISTS friends_owner_id ON friends(owner_id);

CREATE TABLE IF NOT EXISTS transactions (
	id            SERIAL PRIMARY KEY,
	creator_id    INT NOT NULL REFERENCES users(id),
	payer_id      INT NOT NULL REFERENCES friends(id),
	title         TEXT NOT NULL,
	category      TEXT,
	amount        DOUBLE PRECISION NOT NULL,
	currency_code TEXT NOT NULL,
	split_method  TEXT NOT NULL,
	rate_snapshot JSONB NOT NULL,
	occurred_on   TIMESTAMPTZ NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS transactions_payer_id ON transactions(payer_id);
CREATE INDEX IF NOT EXISTS transactions_creator_id ON transactions(creator_id);

CREATE TABLE IF NOT EXISTS transaction_items (
	id             SERIAL PRIMARY KEY,
	transaction_id INT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
	description    TEXT NOT NULL,
	amount         DOUBLE PRECISION NOT NULL,
	assignees      INT[] NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS transaction_items_transaction_id ON transaction_items(transaction_id);

CREATE TABLE IF NOT EXISTS splits (
	id             SERIAL PRIMARY KEY,
	transaction_id INT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
	friend_id      INT NOT NULL REFERENCES friends(id),
	amount         DOUBLE PRECISION NOT NULL,
	percentage     DOUBLE PRECISION,
	settled_amount DOUBLE PRECISION,
	is_settled     BOOLEAN NOT NULL DEFAULT FALSE,
	settled_at     TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS splits_transaction_id ON splits(transaction_id);
CREATE INDEX IF NOT EXISTS splits_friend_id ON splits(friend_id);

CREATE TABLE IF NOT EXISTS settlements (
	id             SERIAL PRIMARY KEY,
	reference      TEXT NOT NULL UNIQUE,
	creator_id     INT NOT NULL REFERENCES users(id),
	friend_id      INT NOT NULL REFERENCES friends(id),
	amount         DOUBLE PRECISION NOT NULL,
	applied_amount DOUBLE PRECISION NOT NULL,
	currency_code  TEXT NOT NULL,
	direction      TEXT NOT NULL,
	note           TEXT,
	balance_before DOUBLE PRECISION,
	rate_snapshot  JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS settlements_friend_id ON settlements(friend_id);

CREATE TABLE IF NOT EXISTS settlement_allocations (
	id            SERIAL PRIMARY KEY,
	settlement_id INT NOT NULL REFERENCES settlements(id) ON DELETE CASCADE,
	split_id      INT NOT NULL REFERENCES splits(id),
	amount        DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS settlement_allocations_settlement_id ON settlement_allocations(settlement_id);
`

// migrate executes the schema setup
func migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
