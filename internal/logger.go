package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gitee.com/golang-module/dongle"
	"github.com/rs/zerolog"

	"paygate/entity"
	"paygate/services"
)

// Logger writes structured entries with zerolog and, when a database is set,
// mirrors every entry to the log collection.
type Logger struct {
	category string
	database services.Database
	log      zerolog.Logger
}

// NewLogger creates a logger for category writing to stdout.
func NewLogger(category string, debug bool, database services.Database) *Logger {
	return newLogger(os.Stdout, category, debug, database)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{category: "nop", log: zerolog.Nop()}
}

func newLogger(w io.Writer, category string, debug bool, database services.Database) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return &Logger{
		category: category,
		database: database,
		log:      zerolog.New(w).Level(level).With().Timestamp().Str("category", category).Logger(),
	}
}

func (l *Logger) Debug(text string) {
	l.log.Debug().Msg(text)
	if l.log.GetLevel() <= zerolog.DebugLevel {
		l.write(zerolog.DebugLevel, text, nil)
	}
}

func (l *Logger) Info(text string) {
	l.log.Info().Msg(text)
	l.write(zerolog.InfoLevel, text, nil)
}

func (l *Logger) Warn(text string) {
	l.log.Warn().Msg(text)
	l.write(zerolog.WarnLevel, text, nil)
}

func (l *Logger) Error(text string, err error) {
	l.log.Error().Err(err).Msg(text)
	l.write(zerolog.ErrorLevel, text, err)
}

func (l *Logger) write(level zerolog.Level, text string, err error) {
	if l.database == nil {
		return
	}
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level.String(),
		Category: l.category,
		Text:     text,
	}
	if err != nil {
		message.Error = err.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if e := l.database.WriteLogMessage(ctx, message); e != nil {
		l.log.Warn().Err(e).Msg("write log message")
	}
}

// secret masks an identifier for logging.
func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}

// fingerprint identifies a signature in logs without revealing it.
func fingerprint(signature string) string {
	if signature == "" {
		return "?"
	}
	sum := dongle.Encrypt.FromString(signature).BySha256().ToHexString()
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
