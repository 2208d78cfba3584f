package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/voicememo/internal/dbx"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/transcriptions"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transcriptions(db dbx.DBTX) transcriptions.Repository
}
