// Package server assembles the notevault server from its configuration:
// storage, payload store, credential hasher, token minter, directory service
// and the gRPC transport, and runs them until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/auth"
	"github.com/dmitrijs2005/notevault/internal/server/config"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/payloads"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notevault/internal/server/services"
	"github.com/dmitrijs2005/notevault/internal/server/telemetry"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/notevault/internal/server/grpc"
)

const serviceName = "notevault-server"

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	directory *services.DirectoryService
	telemetry telemetry.ShutdownFunc
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := auth.NewHasher(c.Hasher, c.BcryptCost)
	if err != nil {
		return nil, err
	}

	minter, err := auth.NewMinter(c.TrustchainID, c.TrustchainPrivateKey, c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("token minter: %w", err)
	}

	db, rm, err := repomanager.Open(ctx, dbx.Dialect(c.StorageDriver), c.SQLTarget())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := payloads.New(ctx, c.PayloadBackend, rm.Users(db), c.S3())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("payload store: %w", err)
	}

	shutdown, err := telemetry.Setup(ctx, serviceName, c.OTLPEndpoint)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	dir := services.NewDirectoryService(services.DirectoryDeps{
		DB:       db,
		Repos:    rm,
		Payloads: store,
		Hasher:   hasher,
		Minter:   minter,
		Logger:   logger,
		ClientConfig: models.ClientConfig{
			TrustchainID:   c.TrustchainID,
			PayloadStore:   store.Name(),
			TokenAlgorithm: minter.Algorithm(),
		},
	})

	logger.Info(ctx, "app initialized",
		"storage", c.StorageDriver,
		"payloads", store.Name(),
		"token_alg", minter.Algorithm())

	return &App{config: c, logger: logger, db: db, directory: dir, telemetry: shutdown}, nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// flushes telemetry and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.directory)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})

	err := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	err = errors.Join(err, app.telemetry(shutdownCtx), app.db.Close())
	if err != nil {
		app.logger.Error(ctx, "app stopped with error", "error", err)
		return err
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}
