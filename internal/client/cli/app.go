// Package cli implements the field-device command line interface:
// enrollment, offline record capture, status reporting and sync.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhishekk-y16/KisanMitra/internal/client/api"
	"github.com/abhishekk-y16/KisanMitra/internal/client/connectivity"
	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
	"github.com/abhishekk-y16/KisanMitra/internal/client/records"
	"github.com/abhishekk-y16/KisanMitra/internal/client/storage/boltdb"
	"github.com/abhishekk-y16/KisanMitra/internal/client/sync"
	"github.com/abhishekk-y16/KisanMitra/internal/keystore"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

// Options carries the global CLI flags
type Options struct {
	ServerURL  string
	DataDir    string
	Passphrase bool // prompt for a key passphrase instead of plain key storage
	LogLevel   string
}

// App bundles the opened client subsystems. One App per command
// invocation; Close releases the database.
type App struct {
	Logger  *slog.Logger
	IO      iocli.IO
	Storage *boltdb.Storage
	Repo    *records.Repository
	Client  *api.Client
}

// openApp opens local storage, loads or creates the encryption key and
// builds the repository and API client.
func openApp(ctx context.Context, io iocli.IO, opts Options) (*App, error) {
	logger := newLogger(opts.LogLevel)

	var passphrase string
	if opts.Passphrase {
		var err error
		passphrase, err = io.ReadPassword("Key passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
	}

	slot, err := keystore.NewFileSlot(filepath.Join(opts.DataDir, "key.json"))
	if err != nil {
		return nil, err
	}
	key, err := keystore.New(slot, passphrase, logger).GetOrCreateKey()
	if err != nil {
		return nil, err
	}

	storage, err := boltdb.New(ctx, filepath.Join(opts.DataDir, "client.db"), models.Collections())
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	repo := records.NewRepository(storage, key, models.Collections(), models.DefaultMaxRetries, logger)

	return &App{
		Logger:  logger,
		IO:      io,
		Storage: storage,
		Repo:    repo,
		Client:  api.NewClient(opts.ServerURL, 0),
	}, nil
}

// Close releases the local database
func (a *App) Close() error {
	return a.Storage.Close()
}

// NewEngine builds a sync engine over the app's repository and token
// store. The monitor choice is the caller's: a health prober for the
// daemon, a manual always-online monitor for one-shot sync.
func (a *App) NewEngine(monitor connectivity.Monitor, cfg sync.Config) *sync.Engine {
	transport := api.NewSubmitter(a.Client, a.Storage)
	return sync.New(a.Repo, transport, monitor, cfg, a.Logger)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
