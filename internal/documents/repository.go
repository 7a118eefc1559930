package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjtoys/docgen/internal/orders"
	"github.com/mjtoys/docgen/internal/render"
)

var (
	// ErrNotFound indicates the document id is unknown.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateID indicates a document id collision on insert.
	ErrDuplicateID = errors.New("document id already exists")
)

// Repository persists documents and their field-edit sets.
type Repository interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context) ([]Document, error)
	SavePDF(ctx context.Context, id string, pdf []byte) error
	SaveFieldEdits(ctx context.Context, documentID string, edits orders.FieldEdits) error
	GetFieldEdits(ctx context.Context, documentID string) (orders.FieldEdits, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) SaveDocument(ctx context.Context, doc Document) error {
	orderData, err := json.Marshal(doc.Order)
	if err != nil {
		return fmt.Errorf("encode order data: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO documents (document_id, document_type, order_number, order_data, html_content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, string(doc.Kind), doc.OrderNumber, orderData, doc.HTML, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *repository) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT document_id, document_type, order_number, order_data, html_content, pdf_content, created_at, updated_at
		FROM documents WHERE document_id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

func (r *repository) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT document_id, document_type, order_number, order_data, html_content, pdf_content, created_at, updated_at
		FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (r *repository) SavePDF(ctx context.Context, id string, pdf []byte) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET pdf_content = $2, updated_at = $3 WHERE document_id = $1`,
		id, pdf, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save pdf %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) SaveFieldEdits(ctx context.Context, documentID string, edits orders.FieldEdits) error {
	data, err := json.Marshal(edits)
	if err != nil {
		return fmt.Errorf("encode field edits: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO field_edits (document_id, edits, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (document_id) DO UPDATE SET edits = $2, updated_at = $3`,
		documentID, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save field edits %s: %w", documentID, err)
	}
	return nil
}

func (r *repository) GetFieldEdits(ctx context.Context, documentID string) (orders.FieldEdits, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT edits FROM field_edits WHERE document_id = $1`, documentID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return orders.FieldEdits{}, nil
		}
		return nil, fmt.Errorf("get field edits %s: %w", documentID, err)
	}
	var edits orders.FieldEdits
	if err := json.Unmarshal(data, &edits); err != nil {
		return nil, fmt.Errorf("decode field edits %s: %w", documentID, err)
	}
	return edits, nil
}

func scanDocument(row pgx.Row) (*Document, error) {
	var (
		doc       Document
		kind      string
		orderData []byte
	)
	if err := row.Scan(&doc.ID, &kind, &doc.OrderNumber, &orderData, &doc.HTML, &doc.PDF, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.Kind = render.Kind(kind)
	if err := json.Unmarshal(orderData, &doc.Order); err != nil {
		return nil, err
	}
	return &doc, nil
}
