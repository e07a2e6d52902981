package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/clock"
	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/random"
	"github.com/MaelVB/Drawsyn-sub000/internal/gateway"
	"github.com/MaelVB/Drawsyn-sub000/internal/roomstore"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/words"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage/memory"
	redisstorage "github.com/MaelVB/Drawsyn-sub000/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

const mongoConnectTimeout = 10 * time.Second

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Rooms   *roomstore.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordService  *words.Service
	Orchestrator *room.Orchestrator
	Verifier     identity.Verifier
	Signer       *identity.Signer
	Archive      *archive.Dispatcher
	Games        *archive.Games
	Gateway      *gateway.Gateway

	logger      *slog.Logger
	mongoClient *mongo.Client
	wg          sync.WaitGroup
}

// Config holds configuration for the application factory
type Config struct {
	// WordsPath is a word list file, one word per line (optional).
	// If empty, words saved in storage are used, then the embedded list.
	WordsPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Identity configures token verification (optional)
	// If the secret is empty, identity.DefaultConfig() is used
	Identity identity.Config
	// Room tunes the orchestrator; zero value means room.DefaultConfig()
	Room room.Config
	// Gateway tunes socket handling; zero value means gateway.DefaultConfig()
	Gateway gateway.Config
	// Archive tunes the finished game dispatcher; zero value means archive.DefaultDispatcherConfig()
	Archive archive.DispatcherConfig
	// MongoURI enables the Mongo game archive alongside storage (optional)
	MongoURI string
	// MongoDatabase is the Mongo database holding archived games
	MongoDatabase string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// The local storage always receives finished games, Mongo is an extra copy
	var sink archive.Sink = archive.NewStorageSink(store)
	var mongoClient *mongo.Client
	var mongoSink *archive.MongoSink
	if cfg.MongoURI != "" {
		client, err := connectMongo(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		dbName := cfg.MongoDatabase
		if dbName == "" {
			dbName = "drawsyn"
		}
		mongoClient = client
		mongoSink = archive.NewMongoSink(client.Database(dbName))
		sink = archive.Multi{sink, mongoSink}
		logger.Info("mongo archive enabled", slog.String("database", dbName))
	}

	app := newWithDependencies(store, clock.New(), random.New(), sink, withDefaults(cfg), logger)
	app.mongoClient = mongoClient
	if mongoSink != nil {
		app.Games = archive.NewGames(store, mongoSink)
	}

	if err := app.loadWords(context.Background(), cfg.WordsPath); err != nil {
		_ = app.Close(context.Background())
		return nil, err
	}

	return app, nil
}

// withDefaults fills zero-valued component configs
func withDefaults(cfg Config) Config {
	if len(cfg.Identity.Secret) == 0 {
		cfg.Identity = identity.DefaultConfig()
	}
	if cfg.Room == (room.Config{}) {
		cfg.Room = room.DefaultConfig()
	}
	if cfg.Gateway.SendBufferSize == 0 {
		cfg.Gateway = gateway.DefaultConfig()
	}
	if cfg.Archive == (archive.DispatcherConfig{}) {
		cfg.Archive = archive.DefaultDispatcherConfig()
	}
	return cfg
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, sink archive.Sink, cfg Config, logger *slog.Logger) *App {
	rooms := roomstore.New()
	wordService := words.New(store, rnd, logger)
	dispatcher := archive.NewDispatcher(sink, cfg.Archive, logger)
	orch := room.NewOrchestrator(rooms, wordService, dispatcher, clk, rnd, cfg.Room, logger)
	verifier := identity.NewJWTVerifier(cfg.Identity, clk)
	gw := gateway.New(orch, verifier, cfg.Gateway, logger)

	return &App{
		Storage:      store,
		Rooms:        rooms,
		Clock:        clk,
		Random:       rnd,
		WordService:  wordService,
		Orchestrator: orch,
		Verifier:     verifier,
		Signer:       identity.NewSigner(cfg.Identity, clk),
		Archive:      dispatcher,
		Games:        archive.NewGames(store),
		Gateway:      gw,
		logger:       logger,
	}
}

// loadWords prefers an explicit file, then a list saved in storage, then the embedded list
func (a *App) loadWords(ctx context.Context, path string) error {
	if path != "" {
		if err := a.WordService.LoadFromFile(ctx, path); err != nil {
			return fmt.Errorf("load words from %s: %w", path, err)
		}
		return nil
	}

	if err := a.WordService.LoadFromStorage(ctx); err == nil {
		return nil
	}
	return a.WordService.LoadDefault()
}

// Start launches the idle sweeper and the round ticker. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		a.Orchestrator.RunSweeper(ctx)
	}()
	go func() {
		defer a.wg.Done()
		a.Gateway.RunRoundTicker(ctx)
	}()
}

// Close waits for background loops (their context must already be cancelled), closes live
// sockets, drains the archive queue and releases storage connections
func (a *App) Close(ctx context.Context) error {
	a.wg.Wait()
	a.Gateway.Shutdown()
	a.Archive.Close()

	var errs []error
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
	}
	if closer, ok := a.Storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}
