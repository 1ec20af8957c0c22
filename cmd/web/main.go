package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/jvirtane/barfeud/internal/ai"
	"github.com/jvirtane/barfeud/internal/broker"
	"github.com/jvirtane/barfeud/internal/envstruct"
	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/logging"
	"github.com/jvirtane/barfeud/internal/pprofserver"
	"github.com/jvirtane/barfeud/internal/repositories"
	"github.com/jvirtane/barfeud/internal/session"
	"github.com/jvirtane/barfeud/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	games          *session.Manager
	broker         *broker.SnapshotBroker[string, session.Snapshot]
	questions      *repositories.QuestionRepository
	snapshots      *repositories.SnapshotRepository
	aiClient       ai.Client
	aiEnabled      bool
}

type config struct {
	Addr         string `env:"BARFEUD_ADDR" envDefault:"localhost:4000"`
	PprofPort    string `env:"BARFEUD_PPROF_PORT" envDefault:":6060"`
	SQLiteURL    string `env:"BARFEUD_SQLITE_URL" envDefault:"./barfeud.sqlite"`
	WinThreshold int    `env:"BARFEUD_WIN_THRESHOLD" envDefault:"200"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelWarn, "load .env", errors.SlogError(err))
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	// pprof listens on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(closeErr))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	snapshotBroker := broker.NewSnapshotBroker[string, session.Snapshot]()
	go snapshotBroker.Start()
	defer snapshotBroker.Stop()

	gameCfg := game.DefaultConfig()
	gameCfg.WinThreshold = cfg.WinThreshold

	questions := repositories.NewQuestionRepository(db, logger)
	if err = questions.EnsureSeeded(ctx); err != nil {
		return errors.Wrap(err, "seed question library")
	}

	snapshots := repositories.NewSnapshotRepository(db, logger)
	go snapshots.StartCleanup(ctx)
	games := session.NewManager(gameCfg, logger, snapshotBroker, snapshots)
	defer games.Close()

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		games:          games,
		broker:         snapshotBroker,
		questions:      questions,
		snapshots:      snapshots,
		aiClient:       ai.NewClient(cfg.OpenAIAPIKey),
		aiEnabled:      cfg.OpenAIAPIKey != "",
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
