package observability

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"petasare/internal/domain"
)

// NewLogger returns a zerolog Logger.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	l := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "dev" || env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return l
}

// LogNotifier mirrors user notifications into the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n domain.Notification) {
	ev := log.Info()
	if n.Level == domain.NotifyError {
		ev = log.Warn()
	}
	ev.Str("notification_id", n.ID).
		Str("level", string(n.Level)).
		Str("detail", n.Detail).
		Msg(n.Title)
}
