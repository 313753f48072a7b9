package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the global logger. Pretty output is for local development;
// production keeps the default JSON stream.
func Init(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stderr)
	}
	log = l.Level(lvl).With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	emit(log.Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(log.Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(log.Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(log.Error(), msg, args)
}

func Fatal(msg string, args ...any) {
	emit(log.Fatal(), msg, args)
}

// emit accepts either key/value pairs ("key", value, ...) or a bare error as the
// sole argument, so call sites can log errors without inventing a key.
func emit(e *zerolog.Event, msg string, args []any) {
	i := 0
	for i < len(args) {
		if err, ok := args[i].(error); ok {
			e = e.Err(err)
			i++
			continue
		}
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			e = e.Interface(fmt.Sprintf("arg%d", i), args[i])
			i++
			continue
		}
		e = e.Interface(key, args[i+1])
		i += 2
	}
	e.Msg(msg)
}
