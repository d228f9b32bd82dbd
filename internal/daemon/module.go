package daemon

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"parley/internal/bus"
	"parley/internal/chat"
	"parley/internal/config"
	"parley/internal/docstore"
	"parley/internal/gateway"
	"parley/internal/lock"
	"parley/internal/logging"
	"parley/internal/translate"
)

// Params holds the resolved configuration passed to the fx module.
type Params struct {
	Config *config.Config
}

// Module returns the fx module for the daemon, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideLock,
			provideDB,
			provideStore,
			provideEngine,
			provideTranslator,
			provideGateway,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(p.Config.LogPath())
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring data-dir lock", zap.String("dir", p.Config.DataDir))
	l, err := lock.Acquire(p.Config.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Info("data-dir lock acquired")
	return l, nil
}

func provideDB(p Params, _ *lock.Lock, logger *zap.Logger) (*docstore.DB, error) {
	db, err := docstore.Open(p.Config.DBPath())
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", p.Config.DBPath()))
	return db, nil
}

func provideStore(db *docstore.DB, b *bus.Bus) *docstore.Store {
	return docstore.New(db, b)
}

func provideEngine(store *docstore.Store, logger *zap.Logger) *chat.Service {
	return chat.NewService(store, logger)
}

func provideTranslator(p Params, logger *zap.Logger) translate.Translator {
	cfg := p.Config.Translate
	return &translate.Fallback{
		Primary: &translate.Remote{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
		},
		Secondary: &translate.Local{Endpoint: cfg.LocalEndpoint},
		Logger:    logger,
	}
}

func provideGateway(p Params, engine *chat.Service, translator translate.Translator, logger *zap.Logger) *gateway.Server {
	return gateway.New(p.Config.Listen, engine, translator, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *gateway.Server, db *docstore.DB, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := srv.Listen(); err != nil {
					logger.Error("gateway server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("error stopping gateway", zap.Error(err))
			}
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
