// Package main runs the MUD: the world goroutine, its tickers, the gRPC
// health service and the Telnet acceptor.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/config"
	"github.com/cory-johannsen/deltamud/internal/frontend/telnet"
	"github.com/cory-johannsen/deltamud/internal/game/command"
	"github.com/cory-johannsen/deltamud/internal/game/dice"
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/game/world"
	"github.com/cory-johannsen/deltamud/internal/gameserver"
	"github.com/cory-johannsen/deltamud/internal/messaging"
	"github.com/cory-johannsen/deltamud/internal/observability"
	"github.com/cory-johannsen/deltamud/internal/scripting"
	"github.com/cory-johannsen/deltamud/internal/server"
	"github.com/cory-johannsen/deltamud/internal/storage"
	"github.com/cory-johannsen/deltamud/internal/storage/bolt"
	"github.com/cory-johannsen/deltamud/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "mudserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)

	// Content
	loadStart := time.Now()
	defs, err := inventory.LoadItems(cfg.World.ItemsDir)
	if err != nil {
		logger.Fatal("loading items", zap.Error(err))
	}
	registry := inventory.NewRegistry()
	if err := registry.RegisterAll(defs); err != nil {
		logger.Fatal("registering items", zap.Error(err))
	}
	zones, err := world.LoadZonesFromDir(cfg.World.ZonesDir)
	if err != nil {
		logger.Fatal("loading zones", zap.Error(err))
	}
	worldMgr, err := world.NewManager(zones)
	if err != nil {
		logger.Fatal("creating world manager", zap.Error(err))
	}
	if err := worldMgr.ValidateExits(); err != nil {
		logger.Fatal("validating exits", zap.Error(err))
	}
	items := inventory.NewManager(registry, logger)
	placed, err := worldMgr.Populate(items, logger)
	if err != nil {
		logger.Warn("some room items were not placed", zap.Error(err))
	}
	logger.Info("world loaded",
		zap.Int("zones", worldMgr.ZoneCount()),
		zap.Int("rooms", worldMgr.RoomCount()),
		zap.Int("item_defs", len(defs)),
		zap.Int("items_placed", placed),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	lc := server.NewLifecycle(logger)
	lc.StopTimeout = cfg.Server.ShutdownTimeout

	sessMgr := session.NewManager()
	pub, relay := newPublisher(cfg.Messaging, sessMgr, lc, logger)

	store := openStore(ctx, cfg, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store", zap.Error(err))
		}
	}()

	env := &command.Env{
		Items:        items,
		Sessions:     sessMgr,
		World:        worldMgr,
		Pub:          pub,
		Roller:       roller,
		Registry:     command.DefaultRegistry(),
		Rules:        cfg.Rules,
		DonationRoom: cfg.World.DonationRoom,
		MoneyItem:    cfg.World.MoneyItem,
		Logger:       logger,
	}

	scriptMgr := scripting.NewManager(roller, logger)
	defer scriptMgr.Close()
	globalDir := filepath.Join(cfg.World.ScriptsDir, "global")
	if err := gameserver.LoadScripts(scriptMgr, env, globalDir, cfg.Rules.ScriptInstructionLimit, logger); err != nil {
		logger.Fatal("loading scripts", zap.Error(err))
	}
	gameserver.BindScripts(scriptMgr, env)

	gameWorld := gameserver.NewWorld(env, store, cfg.GameServer.QueueSize, logger)
	lc.Add("world", gameWorld)

	ticker := gameserver.NewTicker(logger)
	ticker.Register("conditions", cfg.GameServer.TickInterval, func(ctx context.Context) {
		if err := gameWorld.Do(ctx, gameWorld.DecayConditions); err != nil {
			logger.Debug("condition tick skipped", zap.Error(err))
		}
	})
	ticker.Register("autosave", cfg.GameServer.AutosaveInterval, func(ctx context.Context) {
		saved, err := gameWorld.SaveAll(ctx)
		if err != nil {
			logger.Error("autosave", zap.Int("saved", saved), zap.Error(err))
			return
		}
		logger.Debug("autosave", zap.Int("saved", saved))
	})
	lc.Add("ticker", ticker)

	lis, err := net.Listen("tcp", cfg.GameServer.Addr())
	if err != nil {
		logger.Fatal("listening for health checks", zap.String("addr", cfg.GameServer.Addr()), zap.Error(err))
	}
	health := gameserver.NewHealthServer(lis, logger)
	lc.Add("health", health)

	handler := telnet.NewHandler(gameWorld, relay, cfg.Server.Name, logger)
	lc.Add("telnet", telnet.NewAcceptor(cfg.Telnet, handler, logger))

	lc.OnReady = func() { health.SetServing(true) }
	lc.OnShutdown = func() {
		health.SetServing(false)
		saveCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if saved, err := gameWorld.SaveAll(saveCtx); err != nil {
			logger.Error("final save", zap.Int("saved", saved), zap.Error(err))
		}
	}

	logger.Info("mud server initialized",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("health_addr", cfg.GameServer.Addr()),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("messaging", cfg.Messaging.Backend),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lc.Run(ctx); err != nil {
		logger.Error("server exited with error", zap.Error(err))
	}
}

// newPublisher picks in-process or NATS delivery. The relay is nil for
// in-process delivery, which pushes straight onto player entities.
func newPublisher(cfg config.MessagingConfig, sessMgr *session.Manager, lc *server.Lifecycle, logger *zap.Logger) (messaging.Publisher, telnet.RelayFunc) {
	if cfg.Backend != config.MessagingNATS {
		return messaging.NewLocalPublisher(sessMgr), nil
	}
	natsSrv, err := messaging.NewNatsServer(cfg, logger)
	if err != nil {
		logger.Fatal("creating nats server", zap.Error(err))
	}
	if err := natsSrv.Connect(); err != nil {
		logger.Fatal("starting nats server", zap.Error(err))
	}
	lc.Add("nats", natsSrv)
	pub := messaging.NewNatsPublisher(natsSrv, sessMgr)
	return pub, pub.Relay
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) storage.Store {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		dbStart := time.Now()
		pool, err := postgres.Open(ctx, cfg.Database, 5*time.Second)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		return postgres.NewCharacterRepository(pool)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.BoltPath), 0o755); err != nil {
			logger.Fatal("creating bolt directory", zap.Error(err))
		}
		store, err := bolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			logger.Fatal("opening bolt store", zap.String("path", cfg.Storage.BoltPath), zap.Error(err))
		}
		logger.Info("bolt store opened", zap.String("path", store.Path()))
		return store
	}
}
