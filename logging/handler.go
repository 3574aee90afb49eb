package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

const (
	reset = "\033[0m"

	red          = 31
	cyan         = 36
	lightGray    = 37
	darkGray     = 90
	lightRed     = 91
	lightYellow  = 93
	lightMagenta = 95
)

// ModuleKey is the attribute rendered as the "[Module]" prefix of a line
const ModuleKey = "module"

func colorize(enabled bool, colorCode int, v string) string {
	if !enabled {
		return v
	}
	return fmt.Sprintf("\033[%sm%s%s", strconv.Itoa(colorCode), v, reset)
}

// sink is shared by a handler and every handler derived from it through
// WithAttrs/WithGroup, so that swapping the output affects all of them.
type sink struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

type Handler struct {
	opts   slog.HandlerOptions
	sink   *sink
	module string
	attrs  []slog.Attr
	group  string
}

func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		opts: *opts,
		sink: &sink{out: out, color: true},
	}
}

func (h *Handler) SetOutput(out io.Writer) {
	h.sink.mu.Lock()
	h.sink.out = out
	h.sink.mu.Unlock()
}

func (h *Handler) SetColor(enabled bool) {
	h.sink.mu.Lock()
	h.sink.color = enabled
	h.sink.mu.Unlock()
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	for _, a := range attrs {
		if a.Key == ModuleKey && nh.group == "" {
			nh.module = a.Value.String()
			continue
		}
		nh.attrs = append(nh.attrs, nh.qualify(a))
	}
	return nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	if nh.group == "" {
		nh.group = name
	} else {
		nh.group = nh.group + "." + name
	}
	return nh
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	color := h.sink.color
	module := h.module

	var b bytes.Buffer
	b.WriteString(colorize(color, lightGray, r.Time.Format("15:04:05.000 ")))
	b.WriteString(colorize(color, levelColor(r.Level), LevelString(r.Level)+" "))

	extra := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	extra = append(extra, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == ModuleKey && h.group == "" {
			module = a.Value.String()
			return true
		}
		extra = append(extra, h.qualify(a))
		return true
	})

	if module != "" {
		b.WriteString(colorize(color, lightGray, "["+module+"] "))
	}
	b.WriteString(r.Message)

	for _, a := range extra {
		if a.Equal(slog.Attr{}) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(colorize(color, darkGray, a.Key+"="))
		b.WriteString(a.Value.Resolve().String())
	}
	b.WriteByte('\n')

	_, err := h.sink.out.Write(b.Bytes())
	return err
}

func (h *Handler) clone() *Handler {
	nh := *h
	nh.attrs = append([]slog.Attr(nil), h.attrs...)
	return &nh
}

func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	a.Key = h.group + "." + a.Key
	return a
}

func levelColor(l slog.Level) int {
	switch {
	case l < slog.LevelDebug:
		return lightMagenta
	case l < slog.LevelInfo:
		return darkGray
	case l < slog.LevelWarn:
		return cyan
	case l < slog.LevelError:
		return lightYellow
	case l == slog.LevelError:
		return lightRed
	default:
		return red
	}
}
