// Package datastore opens the configured document store and exposes its repositories.
package datastore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unisell/internal/adapter/repository"
	domainrepo "unisell/internal/domain/repository"
	"unisell/internal/infrastructure/firebase"
	"unisell/pkg/config"
	"unisell/pkg/logger"
)

const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"
)

type Store struct {
	Universities domainrepo.UniversityRepository
	Users        domainrepo.UserRepository
	Items        domainrepo.ItemRepository

	close func(context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case DriverFirestore:
		return openFirestore(ctx, cfg)
	case DriverMongo:
		return openMongo(ctx, cfg)
	case DriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		mem := repository.NewMemoryStore()
		return &Store{
			Universities: mem.Universities(),
			Users:        mem.Users(),
			Items:        mem.Items(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func openFirestore(ctx context.Context, cfg *config.Config) (*Store, error) {
	opts, err := firebase.CredentialsOption(cfg)
	if err != nil {
		return nil, err
	}
	client, err := firebase.NewFirestore(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{
		Universities: repository.NewFirestoreUniversityRepository(client),
		Users:        repository.NewFirestoreUserRepository(client),
		Items:        repository.NewFirestoreItemRepository(client),
		close:        func(context.Context) error { return client.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(cfg.MongoDatabase)
	logger.Info("Connected to MongoDB database %s", cfg.MongoDatabase)
	return &Store{
		Universities: repository.NewMongoUniversityRepository(db),
		Users:        repository.NewMongoUserRepository(db),
		Items:        repository.NewMongoItemRepository(db),
		close:        client.Disconnect,
	}, nil
}
