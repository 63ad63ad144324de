package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeSystem LogType = "SYS"
	TypeDB     LogType = "DB"
	TypePoints LogType = "PTS"
	TypeBadge  LogType = "BDG"
	TypeAPI    LogType = "API"
	TypeError  LogType = "ERR"
)

// CustomHandler prints one coloured line per record:
//
//	[name] [15:04:05] [LEVEL] [TYPE] message key=value ...
//
// The "type" attribute picks the TYPE column and is not printed itself.
type CustomHandler struct {
	name      string
	opts      slog.HandlerOptions
	attrs     []slog.Attr
	groups    []string
	mu        *sync.Mutex
	w         io.Writer
	timestamp func() time.Time
}

func NewHandler(name string, opts slog.HandlerOptions, w io.Writer) *CustomHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &CustomHandler{
		name:      name,
		opts:      opts,
		mu:        &sync.Mutex{},
		w:         w,
		timestamp: time.Now,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify([]slog.Attr{a})...)
		return true
	})

	logType := TypeSystem
	var sb strings.Builder
	for _, a := range attrs {
		if a.Key == "type" {
			logType = parseType(a.Value.String())
			continue
		}
		fmt.Fprintf(&sb, " %s%s=%s%v", colorCyan, a.Key, colorWhite, a.Value.Resolve())
	}

	message := r.Message
	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		message = fmt.Sprintf("%s (%s:%d)", message, filepath.Base(f.File), f.Line)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		h.name,
		h.timestamp().Format("15:04:05"),
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		sb.String(),
		colorReset,
	)
	return err
}

func (h *CustomHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		if a.Key != "type" {
			a.Key = prefix + a.Key
		}
		out[i] = a
	}
	return out
}

func parseType(v string) LogType {
	switch strings.ToLower(v) {
	case "db":
		return TypeDB
	case "points":
		return TypePoints
	case "badge":
		return TypeBadge
	case "api":
		return TypeAPI
	case "error":
		return TypeError
	}
	return TypeSystem
}
