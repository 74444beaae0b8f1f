// Embedded SQLite implementation of the Store interface, backed by GORM
// with the pure-Go driver. Documents are rows in a single table keyed by
// (collection, id) with the JSON body in a text column; equality queries
// use the SQLite json_extract function so field lookups stay in SQL.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// record is the row shape backing one document. Timestamps are managed
// here, not by GORM, so UpdatedAt stays nil until the first merge.
type record struct {
	Collection string     `gorm:"primaryKey;type:varchar(64)"`
	ID         string     `gorm:"primaryKey;type:char(36)"`
	Body       string     `gorm:"type:text;not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the database table name for record.
func (record) TableName() string { return "documents" }

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite database, applies PRAGMAs and pool
// settings, and migrates the documents table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	// Fail early if the parent directory does not exist (instead of a
	// confusing sqlite "out of memory (14)").
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already-open GORM handle. Intended for tests that
// manage their own in-memory databases.
func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add stores data as a new document and returns its assigned UUID.
func (s *SQLiteStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return "", &Error{Op: "add", Code: CodeInvalidArgument, Err: err}
	}
	rec := record{
		Collection: collection,
		ID:         uuid.NewString(),
		Body:       string(body),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", &Error{Op: "add", Code: translate(err), Err: err}
	}
	return rec.ID, nil
}

// Get fetches one document by key.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var rec record
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&rec).Error
	if err != nil {
		return Document{}, &Error{Op: "get", Code: translate(err), Err: err}
	}
	return rec.document()
}

// List returns every document in collection in insertion order.
func (s *SQLiteStore) List(ctx context.Context, collection string) ([]Document, error) {
	var recs []record
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at").
		Find(&recs).Error
	if err != nil {
		return nil, &Error{Op: "list", Code: translate(err), Err: err}
	}
	return documents(recs, "list")
}

// Merge overwrites the supplied fields of an existing document and stamps
// the update timestamp. Missing documents yield CodeNotFound.
func (s *SQLiteStore) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec record
		if err := tx.Where("collection = ? AND id = ?", collection, id).First(&rec).Error; err != nil {
			return &Error{Op: "merge", Code: translate(err), Err: err}
		}

		var merged map[string]any
		if err := json.Unmarshal([]byte(rec.Body), &merged); err != nil {
			return &Error{Op: "merge", Code: CodeInternal, Err: err}
		}
		for k, v := range data {
			merged[k] = v
		}
		body, err := json.Marshal(merged)
		if err != nil {
			return &Error{Op: "merge", Code: CodeInvalidArgument, Err: err}
		}

		now := time.Now().UTC()
		res := tx.Model(&record{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]any{"body": string(body), "updated_at": now})
		if res.Error != nil {
			return &Error{Op: "merge", Code: translate(res.Error), Err: res.Error}
		}
		return nil
	})
}

// Delete removes a document. Absent documents are a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&record{}).Error
	if err != nil {
		return &Error{Op: "delete", Code: translate(err), Err: err}
	}
	return nil
}

// Where returns the documents whose field equals value, using json_extract
// so the comparison runs inside SQLite.
func (s *SQLiteStore) Where(ctx context.Context, collection, field string, value any) ([]Document, error) {
	var recs []record
	err := s.db.WithContext(ctx).
		Where("collection = ? AND json_extract(body, ?) = ?", collection, "$."+field, value).
		Order("created_at").
		Find(&recs).Error
	if err != nil {
		return nil, &Error{Op: "where", Code: translate(err), Err: err}
	}
	return documents(recs, "where")
}

// document decodes the row into the boundary type.
func (r record) document() (Document, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(r.Body), &data); err != nil {
		return Document{}, &Error{Op: "get", Code: CodeInternal, Err: err}
	}
	return Document{
		ID:        r.ID,
		Data:      data,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func documents(recs []record, op string) ([]Document, error) {
	out := make([]Document, 0, len(recs))
	for _, r := range recs {
		d, err := r.document()
		if err != nil {
			return nil, &Error{Op: op, Code: CodeInternal, Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

// translate classifies a GORM/driver error into a portable store code.
func translate(err error) Code {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return CodeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return CodeAlreadyExists
	case err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return CodeAlreadyExists
	default:
		return CodeInternal
	}
}
