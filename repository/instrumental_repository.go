package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"SadaaFM/db"
	"SadaaFM/model"

	"github.com/google/uuid"
)

// InstrumentalRepository defines the interface for catalog data operations.
type InstrumentalRepository interface {
	Create(ctx context.Context, req *model.CreateInstrumentalRequest) (*model.Instrumental, error)
	GetByID(ctx context.Context, id string) (*model.Instrumental, error)
	GetAll(ctx context.Context, isPremium *bool) ([]*model.Instrumental, error)
	GetFeatured(ctx context.Context) ([]*model.Instrumental, error)
	Update(ctx context.Context, id string, req *model.UpdateInstrumentalRequest) (*model.Instrumental, error)
	IncrementPlayCount(ctx context.Context, id string) (*model.Instrumental, error)
}

// mysqlInstrumentalRepository implements InstrumentalRepository for MySQL.
type mysqlInstrumentalRepository struct {
	DB *sql.DB
}

// NewMySQLInstrumentalRepository creates a new instance of mysqlInstrumentalRepository.
func NewMySQLInstrumentalRepository() InstrumentalRepository {
	return &mysqlInstrumentalRepository{DB: db.DB}
}

const instrumentalColumns = `id, title, mood, duration, duration_formatted, is_premium, is_featured,
	audio_url, ringtone, thumbnail_color, file_size, play_count, preview_start, preview_end, created_at`

// Create inserts a new instrumental, assigning its id and created_at.
func (r *mysqlInstrumentalRepository) Create(ctx context.Context, req *model.CreateInstrumentalRequest) (*model.Instrumental, error) {
	ins := &model.Instrumental{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Mood:              req.Mood,
		Duration:          req.Duration,
		DurationFormatted: req.DurationFormatted,
		IsPremium:         req.IsPremium,
		IsFeatured:        req.IsFeatured,
		AudioURL:          req.AudioURL,
		Ringtone:          req.Ringtone,
		ThumbnailColor:    req.ThumbnailColor,
		FileSize:          req.FileSize,
		PreviewStart:      req.PreviewStart,
		PreviewEnd:        req.PreviewEnd,
		CreatedAt:         time.Now().UTC().Truncate(time.Second),
	}

	query := `INSERT INTO instrumentals (id, title, mood, duration, duration_formatted, is_premium, is_featured,
		audio_url, ringtone, thumbnail_color, file_size, play_count, preview_start, preview_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`
	stmt, err := r.DB.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for Create: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, ins.ID, ins.Title, ins.Mood, ins.Duration, ins.DurationFormatted,
		ins.IsPremium, ins.IsFeatured, ins.AudioURL, nullableString(ins.Ringtone), ins.ThumbnailColor,
		ins.FileSize, ins.PreviewStart, ins.PreviewEnd, ins.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Create: %w", err)
	}

	return ins, nil
}

// GetByID retrieves an instrumental by its ID. Returns (nil, nil) when not found.
func (r *mysqlInstrumentalRepository) GetByID(ctx context.Context, id string) (*model.Instrumental, error) {
	query := `SELECT ` + instrumentalColumns + ` FROM instrumentals WHERE id = ?`
	row := r.DB.QueryRowContext(ctx, query, id)

	ins, err := scanInstrumental(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan instrumental by ID %s: %w", id, err)
	}
	return ins, nil
}

// GetAll retrieves the catalog, optionally filtered by the premium flag.
func (r *mysqlInstrumentalRepository) GetAll(ctx context.Context, isPremium *bool) ([]*model.Instrumental, error) {
	query := `SELECT ` + instrumentalColumns + ` FROM instrumentals`
	args := []interface{}{}
	if isPremium != nil {
		query += ` WHERE is_premium = ?`
		args = append(args, *isPremium)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query instrumentals: %w", err)
	}
	defer rows.Close()

	return collectInstrumentals(rows)
}

// GetFeatured retrieves the curated featured subset.
func (r *mysqlInstrumentalRepository) GetFeatured(ctx context.Context) ([]*model.Instrumental, error) {
	query := `SELECT ` + instrumentalColumns + ` FROM instrumentals WHERE is_featured = TRUE ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured instrumentals: %w", err)
	}
	defer rows.Close()

	return collectInstrumentals(rows)
}

// Update applies the non-nil fields of req to the given instrumental and
// returns the updated record. Returns (nil, nil) when the id is unknown,
// leaving the store unchanged. id and created_at are never mutated.
func (r *mysqlInstrumentalRepository) Update(ctx context.Context, id string, req *model.UpdateInstrumentalRequest) (*model.Instrumental, error) {
	sets := []string{}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if req.Title != nil {
		appendSet("title", *req.Title)
	}
	if req.Mood != nil {
		appendSet("mood", *req.Mood)
	}
	if req.Duration != nil {
		appendSet("duration", *req.Duration)
	}
	if req.DurationFormatted != nil {
		appendSet("duration_formatted", *req.DurationFormatted)
	}
	if req.IsPremium != nil {
		appendSet("is_premium", *req.IsPremium)
	}
	if req.IsFeatured != nil {
		appendSet("is_featured", *req.IsFeatured)
	}
	if req.AudioURL != nil {
		appendSet("audio_url", *req.AudioURL)
	}
	if req.Ringtone != nil {
		// Empty string clears the ringtone.
		appendSet("ringtone", nullableString(*req.Ringtone))
	}
	if req.ThumbnailColor != nil {
		appendSet("thumbnail_color", *req.ThumbnailColor)
	}
	if req.FileSize != nil {
		appendSet("file_size", *req.FileSize)
	}
	if req.PreviewStart != nil {
		appendSet("preview_start", *req.PreviewStart)
	}
	if req.PreviewEnd != nil {
		appendSet("preview_end", *req.PreviewEnd)
	}

	if len(sets) == 0 {
		// Nothing to change; still report not-found for unknown ids.
		return r.GetByID(ctx, id)
	}

	query := `UPDATE instrumentals SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Update for instrumental %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows for Update: %w", err)
	}
	if affected == 0 {
		// Either unknown id or a no-op write; distinguish with a lookup.
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	return r.GetByID(ctx, id)
}

// IncrementPlayCount bumps play_count by one and returns the updated record.
// Returns (nil, nil) when the id is unknown.
func (r *mysqlInstrumentalRepository) IncrementPlayCount(ctx context.Context, id string) (*model.Instrumental, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE instrumentals SET play_count = play_count + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to increment play count for instrumental %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows for IncrementPlayCount: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInstrumental(row rowScanner) (*model.Instrumental, error) {
	ins := &model.Instrumental{}
	var ringtone sql.NullString
	var previewStart, previewEnd sql.NullInt64

	err := row.Scan(&ins.ID, &ins.Title, &ins.Mood, &ins.Duration, &ins.DurationFormatted,
		&ins.IsPremium, &ins.IsFeatured, &ins.AudioURL, &ringtone, &ins.ThumbnailColor,
		&ins.FileSize, &ins.PlayCount, &previewStart, &previewEnd, &ins.CreatedAt)
	if err != nil {
		return nil, err
	}

	if ringtone.Valid {
		ins.Ringtone = ringtone.String
	}
	if previewStart.Valid {
		v := int(previewStart.Int64)
		ins.PreviewStart = &v
	}
	if previewEnd.Valid {
		v := int(previewEnd.Int64)
		ins.PreviewEnd = &v
	}
	return ins, nil
}

func collectInstrumentals(rows *sql.Rows) ([]*model.Instrumental, error) {
	instrumentals := make([]*model.Instrumental, 0)
	for rows.Next() {
		ins, err := scanInstrumental(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instrumental row: %w", err)
		}
		instrumentals = append(instrumentals, ins)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	return instrumentals, nil
}

// nullableString maps "" to NULL so absent ringtones stay NULL in the table.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
