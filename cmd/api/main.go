package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"petasare/internal/adapters/geoip"
	server "petasare/internal/adapters/http_server"
	"petasare/internal/adapters/observability"
	redisad "petasare/internal/adapters/redis"
	"petasare/internal/app"
	"petasare/internal/domain"
	"petasare/internal/shared"
	"petasare/internal/storage/fixture"
	mysqlrepo "petasare/internal/storage/mysql"
	"petasare/internal/storage/sqlite"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// dataset
	repo := openDataset(cfg)
	catalog, err := app.LoadCatalog(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog failed")
	}
	log.Info().Int("hotels", catalog.Len()).Str("source", cfg.DataSource).Msg("catalog loaded")

	selector, err := app.NewSelector(catalog, cfg.MemoSize)
	if err != nil {
		log.Fatal().Err(err).Msg("selector init failed")
	}

	// redis is optional: read cache and, if chosen, bookmark storage
	var cache domain.Cache
	var rc *redisad.Cache
	if cfg.RedisAddr != "" {
		rc = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; continuing without cache")
		} else {
			cache = rc
		}
	}
	// the catalog answers detail reads itself unless MySQL is the source
	var reads domain.HotelRepository = catalog
	if cfg.DataSource == "mysql" {
		reads = repo
	}
	q := app.NewQueryService(reads, cache, cfg.CacheTTL)

	// bookmarks
	kv := openBookmarkKV(cfg, rc)
	bookmarks := app.NewBookmarkStore(kv)
	if err := bookmarks.Load(ctx); err != nil {
		log.Error().Err(err).Msg("bookmark storage unavailable; starting empty")
	}

	// location + notifications
	inbox := app.NewInbox(0)
	location := app.NewLocationProvider(geolocator(cfg), app.Notifiers{inbox, observability.LogNotifier{}}, cfg.LocationTimeout)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Selector:  selector,
		Q:         q,
		Bookmarks: bookmarks,
		Location:  location,
		Inbox:     inbox,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if c, ok := kv.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	log.Info().Msg("bye")
}

func openDataset(cfg shared.Config) domain.HotelRepository {
	if cfg.DataSource == "mysql" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db)
	}

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
	return src
}

func openBookmarkKV(cfg shared.Config, rc *redisad.Cache) domain.KVStore {
	if cfg.BookmarkBackend == "redis" && rc != nil {
		log.Info().Msg("bookmarks stored in redis")
		return redisad.NewKV(rc.Client(), "default")
	}
	kv, err := sqlite.Open(cfg.BookmarkSQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BookmarkSQLitePath).Msg("open bookmark store failed")
	}
	log.Info().Str("path", cfg.BookmarkSQLitePath).Msg("bookmarks stored in sqlite")
	return kv
}

func geolocator(cfg shared.Config) domain.Geolocator {
	switch {
	case cfg.FixedLocation != nil:
		log.Info().Float64("lat", cfg.FixedLocation.Lat).Float64("lng", cfg.FixedLocation.Lng).Msg("using fixed location")
		return geoip.Static{At: *cfg.FixedLocation}
	case cfg.GeoIPBase != "":
		c, err := geoip.New(cfg.GeoIPBase, cfg.GeoIPRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("geoip client init failed")
		}
		return c
	default:
		log.Info().Msg("no geolocation source; clients must report their position")
		return geoip.Unsupported{}
	}
}
