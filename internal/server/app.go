// Package server wires configuration, storage, external services and the
// gRPC and HTTP front ends into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/dmitrijs2005/voicememo/internal/server/audio"
	"github.com/dmitrijs2005/voicememo/internal/server/cache"
	"github.com/dmitrijs2005/voicememo/internal/server/config"
	"github.com/dmitrijs2005/voicememo/internal/server/httpapi"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/voicememo/internal/server/services"
	"github.com/dmitrijs2005/voicememo/internal/server/whisper"

	gs "github.com/dmitrijs2005/voicememo/internal/server/grpc"
)

type App struct {
	config               *config.Config
	logger               logging.Logger
	db                   *sql.DB
	closers              []func() error
	userService          *services.UserService
	transcriptionService *services.TranscriptionService
}

// NewApp opens Postgres, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: c, logger: l, db: db, closers: []func() error{db.Close}}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := audio.NewStore(ctx, audio.Options{
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("audio store: %w", err)
	}

	var transcripts cache.Transcripts = cache.Nop{}
	if c.RedisURL != "" {
		r, err := cache.NewRedis(ctx, c.RedisURL, c.TranscriptCacheTTL)
		if err != nil {
			// the cache is optional; run without it
			l.Warn(ctx, "redis unavailable, transcript cache disabled", "error", err)
		} else {
			transcripts = r
			app.closers = append(app.closers, r.Close)
		}
	}

	engine := whisper.NewClient(c.OpenAIBaseURL, c.OpenAIAPIKey, c.TranscriptionModel)

	app.userService = services.NewUserService(db, rm, c.SecretKey, c.AccessTokenValidityDuration)
	app.transcriptionService = services.NewTranscriptionService(db, rm, store, engine, transcripts, c.DefaultLanguage, l)

	return app, nil
}

func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i]()
	}
	app.closers = nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.transcriptionService, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(app.db, app.config.CORSAllowedOrigins)
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves gRPC and HTTP until a signal arrives or either server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(ctx, "Stopped")
}
