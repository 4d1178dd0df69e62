package database

// defaultSchema creates one table per entity collection. Records are keyed by
// generated UUID strings; embedded documents live in JSONB columns.
const defaultSchema = `
CREATE TABLE IF NOT EXISTS users (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    role        TEXT NOT NULL,
    pin_hash    TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login  TIMESTAMPTZ,
    created_by  TEXT
);

CREATE TABLE IF NOT EXISTS materials (
    id                    TEXT PRIMARY KEY,
    name                  TEXT NOT NULL,
    description           TEXT,
    category              TEXT NOT NULL DEFAULT 'general',
    quantity              INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    unit                  TEXT NOT NULL DEFAULT 'pieces',
    min_stock             INTEGER NOT NULL DEFAULT 0,
    location              TEXT,
    supplier              JSONB,
    supplier_product_code TEXT,
    qr_code               TEXT NOT NULL,
    created_at            TIMESTAMPTZ NOT NULL,
    updated_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tools (
    id                    TEXT PRIMARY KEY,
    name                  TEXT NOT NULL,
    description           TEXT,
    category              TEXT NOT NULL DEFAULT 'general',
    status                TEXT NOT NULL DEFAULT 'available',
    condition             TEXT NOT NULL DEFAULT 'good',
    current_user_name     TEXT,
    location              TEXT,
    supplier              JSONB,
    supplier_product_code TEXT,
    qr_code               TEXT NOT NULL,
    service_records       JSONB,
    created_at            TIMESTAMPTZ NOT NULL,
    updated_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id               TEXT PRIMARY KEY,
    item_id          TEXT NOT NULL,
    item_type        TEXT NOT NULL,
    transaction_type TEXT NOT NULL,
    quantity         INTEGER,
    condition        TEXT,
    user_id          TEXT NOT NULL,
    user_name        TEXT NOT NULL,
    notes            TEXT,
    timestamp        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_item_id ON transactions (item_id);
CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions (timestamp DESC);

CREATE TABLE IF NOT EXISTS stock_takes (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    user_name  TEXT NOT NULL,
    item_type  TEXT NOT NULL,
    entries    JSONB NOT NULL,
    completed  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    type           TEXT NOT NULL DEFAULT 'general',
    website        TEXT,
    contact_person TEXT,
    phone          TEXT,
    email          TEXT,
    account_number TEXT,
    delivery_info  TEXT,
    products       JSONB,
    last_scanned   TIMESTAMPTZ,
    scan_method    TEXT,
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS deliveries (
    id                     TEXT PRIMARY KEY,
    delivery_number        TEXT,
    supplier_id            TEXT,
    supplier_name          TEXT,
    status                 TEXT NOT NULL DEFAULT 'pending',
    items                  JSONB,
    total_items_expected   INTEGER NOT NULL DEFAULT 0,
    total_items_received   INTEGER NOT NULL DEFAULT 0,
    tracking_number        TEXT,
    driver_name            TEXT,
    receiver_name          TEXT,
    delivery_note_photo    TEXT,
    ai_extracted_data      JSONB,
    ai_confidence_score    DOUBLE PRECISION,
    user_confirmed         BOOLEAN NOT NULL DEFAULT FALSE,
    expected_delivery_date TIMESTAMPTZ,
    actual_delivery_date   TIMESTAMPTZ,
    audit_log              JSONB,
    created_at             TIMESTAMPTZ NOT NULL,
    updated_at             TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_deliveries_status ON deliveries (status);
CREATE INDEX IF NOT EXISTS idx_deliveries_created_at ON deliveries (created_at DESC);

CREATE TABLE IF NOT EXISTS notifications (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    message    TEXT NOT NULL,
    type       TEXT NOT NULL,
    data       JSONB,
    read_by    JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at DESC);

CREATE TABLE IF NOT EXISTS error_reports (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    user_name   TEXT NOT NULL,
    title       TEXT NOT NULL,
    description TEXT,
    severity    TEXT NOT NULL DEFAULT 'medium',
    status      TEXT NOT NULL DEFAULT 'open',
    created_at  TIMESTAMPTZ NOT NULL,
    resolved_at TIMESTAMPTZ
);
`
