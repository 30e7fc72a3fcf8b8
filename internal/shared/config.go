package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"petasare/internal/domain"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	DataSource  string // fixture|mysql
	FixturePath string // empty = bundled dataset
	MySQLDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	BookmarkBackend    string // sqlite|redis
	BookmarkSQLitePath string

	GeoIPBase       string
	GeoIPRPS        int
	FixedLocation   *domain.Coords
	LocationTimeout time.Duration

	CacheTTL time.Duration
	Workers  int
	MemoSize int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		DataSource:  strings.ToLower(env("DATA_SOURCE", "fixture")),
		FixturePath: env("FIXTURE_PATH", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/petasare?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		BookmarkBackend:    strings.ToLower(env("BOOKMARK_BACKEND", "sqlite")),
		BookmarkSQLitePath: env("BOOKMARK_SQLITE_PATH", "petasare.db"),

		GeoIPBase:       env("GEOIP_BASE_URL", ""),
		GeoIPRPS:        atoi("GEOIP_RPS", 2),
		LocationTimeout: time.Duration(atoi("LOCATION_TIMEOUT_SECONDS", 10)) * time.Second,

		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:  atoi("SEED_WORKERS", 8),
		MemoSize: atoi("MEMO_SIZE", 128),
	}

	if v := os.Getenv("FIXED_LOCATION"); v != "" {
		loc, err := ParseCoords(v)
		if err != nil {
			log.Warn().Str("value", v).Err(err).Msg("ignoring FIXED_LOCATION")
		} else {
			c.FixedLocation = &loc
		}
	}
	if c.BookmarkBackend == "redis" && c.RedisAddr == "" {
		log.Warn().Msg("BOOKMARK_BACKEND=redis but REDIS_ADDR is empty; falling back to sqlite")
		c.BookmarkBackend = "sqlite"
	}
	return c
}

// ParseCoords reads "lat,lng".
func ParseCoords(s string) (domain.Coords, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coords{}, domain.ErrInvalidLocation
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	c := domain.Coords{Lat: lat, Lng: lng}
	if err1 != nil || err2 != nil || !c.Valid() {
		return domain.Coords{}, domain.ErrInvalidLocation
	}
	return c, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
