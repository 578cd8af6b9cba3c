package slogcustom

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// CustomHandler печатает записи slog в одну цветную строку:
// время, уровень, сообщение и атрибуты key=value.
type CustomHandler struct {
	l      *log.Logger
	mu     *sync.Mutex
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string // префикс групп, например "quiz."
}

// NewCustomHandler создаёт обработчик, пишущий в out записи с уровнем не ниже level.
func NewCustomHandler(out io.Writer, level slog.Leveler) *CustomHandler {
	return &CustomHandler{
		l:     log.New(out, "", 0),
		mu:    &sync.Mutex{},
		level: level,
	}
}

func (c *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch {
	case r.Level >= slog.LevelError:
		level = color.RedString(level)
	case r.Level >= slog.LevelWarn:
		level = color.YellowString(level)
	case r.Level >= slog.LevelInfo:
		level = color.HiBlueString(level)
	default:
		level = color.MagentaString(level)
	}

	var sb strings.Builder
	for _, a := range c.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, c.prefix, a)
		return true
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.l.Println(
		r.Time.Format("15:04:05.000"),
		level,
		r.Message,
		strings.TrimSuffix(sb.String(), " "),
	)
	return nil
}

func (c *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return c
	}

	h := *c
	h.attrs = make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	h.attrs = append(h.attrs, c.attrs...)
	for _, a := range attrs {
		a.Key = c.prefix + a.Key
		h.attrs = append(h.attrs, a)
	}
	return &h
}

func (c *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}

	h := *c
	h.prefix = c.prefix + name + "."
	return &h
}

func (c *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

// writeAttr раскрывает группы атрибутов в плоские ключи через точку.
func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix+a.Key+".", ga)
		}
		return
	}

	sb.WriteString(color.GreenString(prefix + a.Key))
	sb.WriteString("=")
	sb.WriteString(fmt.Sprint(a.Value.Any()))
	sb.WriteString(" ")
}
