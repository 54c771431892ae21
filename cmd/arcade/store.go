package main

import (
	"fmt"

	"github.com/zriley/portfolio-arcade/internal/storage"
	"github.com/zriley/portfolio-arcade/internal/storage/redis"
	"github.com/zriley/portfolio-arcade/internal/storage/sqlite"
)

// openStore opens the backend named by kind.
func openStore(kind, dbPath, redisURL string) (storage.Store, error) {
	switch kind {
	case "", "sqlite":
		s, err := sqlite.Open(dbPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		cfg := redis.DefaultConfig()
		cfg.URL = redisURL
		s, err := redis.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want sqlite or redis)", kind)
	}
}

// openStoreOrWarn opens the store from the global flags. Games still run
// without one, so a failure only disables recording.
func openStoreOrWarn() storage.Store {
	store, err := openStore(flagStore, flagDBPath, flagRedisURL)
	if err != nil {
		logger.Warn("score storage disabled", "store", flagStore, "err", err)
		return nil
	}
	return store
}

func closeStore(store storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing store", "err", err)
	}
}
