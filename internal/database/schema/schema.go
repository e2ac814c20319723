package schema

// SchemaSQL contains the full database schema initialization script.
// Mirrors the goose migrations under migrations/; used by the setup tool to
// bootstrap a fresh database in one shot.
const SchemaSQL = `
-- Accounts: one row per user, created on first interaction, never deleted.
CREATE TABLE IF NOT EXISTS accounts (
    user_id TEXT PRIMARY KEY,
    coins BIGINT NOT NULL DEFAULT 0 CHECK (coins >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Card catalog. Owned by the catalog admin tooling; read-only for the ledger.
CREATE TABLE IF NOT EXISTS cards (
    card_id SERIAL PRIMARY KEY,
    card_code TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    group_name TEXT NOT NULL,
    era TEXT,
    rarity INTEGER NOT NULL CHECK (rarity BETWEEN 1 AND 5),
    droppable BOOLEAN NOT NULL DEFAULT TRUE,
    is_limited BOOLEAN NOT NULL DEFAULT FALSE,
    event_tag TEXT,
    image_url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cards_rarity ON cards (rarity) WHERE droppable;

-- Inventory: one row per (user, card); no row persists at quantity 0.
CREATE TABLE IF NOT EXISTS inventory_entries (
    user_id TEXT NOT NULL REFERENCES accounts(user_id),
    card_id INTEGER NOT NULL REFERENCES cards(card_id),
    quantity INTEGER NOT NULL CHECK (quantity >= 1),
    acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, card_id)
);

-- Cooldowns: one row per (user, action); absent means eligible now.
CREATE TABLE IF NOT EXISTS cooldowns (
    user_id TEXT NOT NULL,
    action TEXT NOT NULL,
    last_claimed_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (user_id, action)
);

-- Marketplace listings. The row's existence is the escrow claim on copies
-- already removed from the seller's inventory.
CREATE TABLE IF NOT EXISTS listings (
    listing_code UUID PRIMARY KEY,
    seller_id TEXT NOT NULL REFERENCES accounts(user_id),
    card_id INTEGER NOT NULL REFERENCES cards(card_id),
    unit_price BIGINT NOT NULL CHECK (unit_price >= 1),
    quantity INTEGER NOT NULL CHECK (quantity >= 1),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at DESC);
`
