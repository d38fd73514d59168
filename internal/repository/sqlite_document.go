package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
)

const documentColumns = `id, file_name, file_type, storage_ref, uploaded_by, uploaded_at, priority, display_order`

// SQLiteDocumentRepo implements DocumentRepo using a SQLite database.
type SQLiteDocumentRepo struct {
	db *sql.DB
}

func NewSQLiteDocumentRepo(db *sql.DB) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: db}
}

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.FileName,
		string(d.FileType),
		d.StorageRef,
		d.UploadedBy,
		d.UploadedAt.Format(timeLayout),
		string(d.Priority),
		0,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	return scanDocument(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteDocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		ORDER BY display_order, uploaded_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *SQLiteDocumentRepo) UpdatePriority(ctx context.Context, id string, p domain.Priority) error {
	res, err := r.db.ExecContext(ctx, `UPDATE documents SET priority = ? WHERE id = ?`, string(p), id)
	if err != nil {
		return fmt.Errorf("updating document priority: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteDocumentRepo) UpdateOrder(ctx context.Context, ranks []ordering.Rank) error {
	return updateDisplayOrder(ctx, r.db, "documents", ranks)
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return requireRow(res)
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	var fileType, priority, uploadedAt string
	var displayOrder int

	err := row.Scan(
		&d.ID,
		&d.FileName,
		&fileType,
		&d.StorageRef,
		&d.UploadedBy,
		&uploadedAt,
		&priority,
		&displayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	d.FileType = domain.FileType(fileType)
	d.Priority = domain.Priority(priority)
	d.UploadedAt = parseTime(uploadedAt, timeLayout)
	return &d, nil
}
