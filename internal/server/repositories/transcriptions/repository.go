// Package transcriptions stores the transcription history of each user.
package transcriptions

import (
	"context"

	"github.com/dmitrijs2005/voicememo/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Transcription) (*models.Transcription, error)
	// FindLatest returns the newest transcription of audioKey in language,
	// or common.ErrNotFound.
	FindLatest(ctx context.Context, userID, audioKey, language string) (*models.Transcription, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Transcription, error)
}
