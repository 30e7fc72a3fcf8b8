package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"petasare/internal/adapters/observability"
	redisad "petasare/internal/adapters/redis"
	"petasare/internal/app"
	"petasare/internal/domain"
	"petasare/internal/shared"
	"petasare/internal/storage/fixture"
	mysqlrepo "petasare/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("fixture", cfg.FixturePath).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	var src *fixture.Source
	var err error
	if cfg.FixturePath != "" {
		src, err = fixture.Open(cfg.FixturePath)
	} else {
		src, err = fixture.Bundled()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("fixture load failed")
	}
	hotels, _ := src.ListHotels(ctx)
	// reject duplicate ids before anything is written
	if _, err := app.NewCatalog(hotels); err != nil {
		log.Fatal().Err(err).Msg("fixture invalid")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	seeder := app.NewSeedService(repo, cache)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var failed int32

	for _, h := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := seeder.SeedHotel(ctx, h); err != nil {
				atomic.AddInt32(&failed, 1)
				log.Warn().Int64("id", h.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", h.ID).Int("reviews", len(h.Reviews)).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	if n := atomic.LoadInt32(&failed); n > 0 {
		log.Fatal().Int32("failed", n).Int("total", len(hotels)).Msg("seeding incomplete")
	}
	log.Info().Int("hotels", len(hotels)).Msg("seeding completed")
}
