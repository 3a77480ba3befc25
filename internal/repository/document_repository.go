package repository

import (
	"context"
	"database/sql"
)

// DocumentStore is the durable storage contract the session manager and the
// business data store depend on: a flat string-keyed store of JSON document
// bodies with no transactions across keys. Each Put replaces the whole
// document for its key.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
}

// Well-known document keys. These names double as the on-disk format: an
// export bundle produced by one deployment can be imported into another as
// long as the keys match.
const (
	KeyCredentials    = "admin_credentials"
	KeyBusinessInfo   = "business_info"
	KeyOperatingHours = "operating_hours"
	KeyMenuItems      = "menu_items"
	KeyBranding       = "branding"
	KeyPWADismissed   = "pwa_install_dismissed"
)

// DocumentRepo persists documents in the `documents` table.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

// Get returns the stored body for key, or ErrNotFound.
func (r *DocumentRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE doc_key=? LIMIT 1", key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Put inserts or replaces the document stored under key.
func (r *DocumentRepo) Put(ctx context.Context, key string, body []byte) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (doc_key, body) VALUES (?,?) ON DUPLICATE KEY UPDATE body=VALUES(body), updated_at=CURRENT_TIMESTAMP",
		key, body)
	return err
}

// Delete removes the document under key. Deleting an absent key is not an
// error.
func (r *DocumentRepo) Delete(ctx context.Context, key string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM documents WHERE doc_key=?", key)
	return err
}
