package data

import (
	"context"
	"fmt"
	"time"

	"cinelist/internal/biz"
	"cinelist/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewKeyValueStore,
	NewCollectionRepo,
	NewGuestSessionRepo,
	NewMovieClient,
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMongo    = "mongo"
)

// Data owns the key-value backend selected by configuration
type Data struct {
	kv  biz.KeyValueStore
	log *log.Helper
}

// NewData opens the configured storage backend
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(logger)

	storage := StorageMemory
	if c != nil && c.Storage != "" {
		storage = c.Storage
	}

	var (
		kv      biz.KeyValueStore
		closeFn func() error
		err     error
	)
	switch storage {
	case StorageMemory:
		kv = NewMemoryStore()
		closeFn = func() error { return nil }
	case StorageRedis:
		kv, closeFn, err = openRedis(c.Redis)
	case StoragePostgres:
		kv, closeFn, err = openPostgres(c.Database)
	case StorageSQLite:
		kv, closeFn, err = openSQLite(c.Database)
	case StorageMongo:
		kv, closeFn, err = openMongo(c.Mongo)
	default:
		err = fmt.Errorf("unknown storage backend %q", storage)
	}
	if err != nil {
		l.Errorf("failed to open %s storage: %v", storage, err)
		return nil, nil, err
	}

	l.Infof("%s storage ready", storage)

	data := &Data{
		kv:  kv,
		log: l,
	}

	cleanup := func() {
		l.Info("closing data resources")
		if err := closeFn(); err != nil {
			l.Errorf("failed to close %s storage: %v", storage, err)
		}
	}

	return data, cleanup, nil
}

// NewKeyValueStore exposes the backend to the repositories
func NewKeyValueStore(d *Data) biz.KeyValueStore {
	return d.kv
}

func openRedis(c *conf.Data_Redis) (biz.KeyValueStore, func() error, error) {
	if c == nil || c.Addr == "" {
		return nil, nil, fmt.Errorf("redis addr is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         c.Addr,
		ReadTimeout:  c.ReadTimeout.AsDuration(),
		WriteTimeout: c.WriteTimeout.AsDuration(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStore(rdb), rdb.Close, nil
}

func openPostgres(c *conf.Data_Database) (biz.KeyValueStore, func() error, error) {
	if c == nil || c.Source == "" {
		return nil, nil, fmt.Errorf("database source is required")
	}

	db, err := gorm.Open(postgres.Open(c.Source), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store, err := NewGormStore(db)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return store, sqlDB.Close, nil
}

func openSQLite(c *conf.Data_Database) (biz.KeyValueStore, func() error, error) {
	path := "cinelist.db"
	if c != nil && c.Source != "" {
		path = c.Source
	}

	store, err := NewSQLiteStore(path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func openMongo(c *conf.Data_Mongo) (biz.KeyValueStore, func() error, error) {
	if c == nil || c.Uri == "" {
		return nil, nil, fmt.Errorf("mongo uri is required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(c.Uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	database := c.Database
	if database == "" {
		database = "cinelist"
	}

	store := NewMongoStore(client.Database(database).Collection(kvTable))
	closeFn := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
	return store, closeFn, nil
}
