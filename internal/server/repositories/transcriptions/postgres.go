package transcriptions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/dbx"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Transcription) (*models.Transcription, error) {
	query :=
		`INSERT INTO transcriptions (user_id, audio_key, language, text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.UserID, t.AudioKey, t.Language, t.Text).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) FindLatest(ctx context.Context, userID, audioKey, language string) (*models.Transcription, error) {
	query :=
		`SELECT id, user_id, audio_key, language, text, created_at FROM transcriptions
		 WHERE user_id = $1 AND audio_key = $2 AND language = $3
		 ORDER BY created_at DESC
		 LIMIT 1`

	t := &models.Transcription{}
	err := r.db.QueryRowContext(ctx, query, userID, audioKey, language).
		Scan(&t.ID, &t.UserID, &t.AudioKey, &t.Language, &t.Text, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Transcription, error) {
	query :=
		`SELECT id, user_id, audio_key, language, text, created_at FROM transcriptions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Transcription
	for rows.Next() {
		t := &models.Transcription{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.AudioKey, &t.Language, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
