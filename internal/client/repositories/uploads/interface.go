package uploads

import (
	"context"
	"time"
)

// Record is one finished upload.
type Record struct {
	ID         string
	Kind       string
	FileName   string
	Status     string
	Error      string
	FinishedAt time.Time
}

// Repository stores finished uploads.
type Repository interface {
	// Save inserts or replaces the record with the same ID.
	Save(ctx context.Context, r Record) error

	// Recent returns at most limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
