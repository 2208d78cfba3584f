package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/client/client"
	"github.com/dmitrijs2005/voicememo/internal/client/config"
	"github.com/dmitrijs2005/voicememo/internal/client/library"
	"github.com/dmitrijs2005/voicememo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/voicememo/internal/client/services"
	"github.com/dmitrijs2005/voicememo/internal/client/snapshot"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/collaboration"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/folders"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/recordings"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/settings"
	"github.com/dmitrijs2005/voicememo/internal/filex"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	writer      *snapshot.Writer
	api         client.Client
	authService *services.AuthService
	transcriber *services.TranscriptionService
	lib         *library.Library

	mu     sync.RWMutex
	Mode   Mode
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, restores every store from its snapshot
// and connects the API client. The connection is lazy, so an unreachable
// server does not prevent start-up.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	if dir := filepath.Dir(c.DatabasePath); dir != "." {
		if err := filex.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewVoiceMemoClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	w := snapshot.NewWriter(kv.NewSQLiteRepository(db), l)
	app, err := newApp(ctx, c, l, db, w, apiClient)
	if err != nil {
		_ = w.Close(ctx)
		_ = apiClient.Close()
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, l logging.Logger, db *sql.DB, w *snapshot.Writer, api client.Client) (*App, error) {
	as, err := services.NewAuthService(ctx, api, db, w, l)
	if err != nil {
		return nil, err
	}

	rs, err := recordings.New(ctx, w, l)
	if err != nil {
		return nil, err
	}
	fs, err := folders.New(ctx, w, l)
	if err != nil {
		return nil, err
	}
	cs, err := collaboration.New(ctx, w, as, l)
	if err != nil {
		return nil, err
	}
	ss, err := settings.New(ctx, w, l)
	if err != nil {
		return nil, err
	}

	lib := library.New(rs, fs, cs, ss, l)
	ts := services.NewTranscriptionService(api, rs, c.TranscriptionTimeout, c.DefaultLanguage, l)
	lib.SetTranscriber(ts)

	return &App{
		config:      c,
		logger:      l.With("module", "cli"),
		db:          db,
		writer:      w,
		api:         api,
		authService: as,
		transcriber: ts,
		lib:         lib,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.CurrentUser()
	return ok
}

// Run starts the connectivity watcher and the REPL, and flushes pending
// snapshots when the user leaves.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close(context.Background())

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to VoiceMemo CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader), a.out)
}

// Close flushes the snapshot writer and releases the database and the
// connection.
func (a *App) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.writer.Close(ctx); err != nil {
		a.logger.Error(ctx, "flushing snapshots failed", "error", err)
	}
	_ = a.authService.Close(ctx)
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.authService.CurrentUser(); ok {
		s = u.Username + " "
	}
	s += string(a.mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		if a.mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	a.setMode(ModeOnline)
}
