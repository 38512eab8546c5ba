package uploads

import (
	"context"
	"fmt"

	"github.com/birkaops/birka/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, rec Record) error {
	query := `INSERT INTO upload_history (id, kind, file_name, status, error, finished_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET kind = excluded.kind,
				file_name = excluded.file_name,
				status = excluded.status,
				error = excluded.error,
				finished_at = excluded.finished_at`

	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.Kind, rec.FileName, rec.Status, rec.Error, rec.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("save upload record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, file_name, status, error, finished_at FROM upload_history
		 ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query upload history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.FileName, &rec.Status, &rec.Error, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan upload record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upload history: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM upload_history`); err != nil {
		return fmt.Errorf("clear upload history: %w", err)
	}
	return nil
}
