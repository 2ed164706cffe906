package xlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
)

// HandlerCreator creates a slog.Handler writing to w.
type HandlerCreator func(w io.Writer, opts *slog.HandlerOptions) slog.Handler

var (
	// JSONHandlerCreator wraps slog.NewJSONHandler.
	JSONHandlerCreator HandlerCreator = func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	}
	// TextHandlerCreator wraps slog.NewTextHandler.
	TextHandlerCreator HandlerCreator = func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	}
)

// LeveledHandler is a slog.Handler whose level can change at runtime.
type LeveledHandler interface {
	slog.Handler
	SetLevel(lvl Level)
}

// NewLeveledHandler creates a handler with create, replacing the level of
// opts by a level variable.
func NewLeveledHandler(create HandlerCreator, w io.Writer, o *slog.HandlerOptions) LeveledHandler {
	opts := slog.HandlerOptions{}
	if o != nil {
		opts = *o
	}
	lvl := &slog.LevelVar{}
	if opts.Level != nil {
		lvl.Set(opts.Level.Level())
	}
	opts.Level = lvl
	return &leveledHandler{Handler: create(w, &opts), level: lvl}
}

type leveledHandler struct {
	slog.Handler
	level *slog.LevelVar
}

// WithAttrs keeps the level variable shared with the derived handler.
func (h *leveledHandler) WithAttrs(attrs []Attr) slog.Handler {
	return &leveledHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

// WithGroup keeps the level variable shared with the derived handler.
func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return &leveledHandler{Handler: h.Handler.WithGroup(name), level: h.level}
}

// SetLevel implements LeveledHandler.
func (h *leveledHandler) SetLevel(lvl Level) {
	h.level.Set(lvl)
}

// MultiHandler dispatches records to every handler enabled for their level.
func MultiHandler(handlers ...LeveledHandler) LeveledHandler {
	return &multiHandler{handlers: handlers}
}

type multiHandler struct {
	handlers []LeveledHandler
}

// Enabled implements slog.Handler.
func (h *multiHandler) Enabled(ctx context.Context, lvl Level) bool {
	return lo.SomeBy(h.handlers, func(item LeveledHandler) bool {
		return item.Enabled(ctx, lvl)
	})
}

// Handle implements slog.Handler. Every enabled handler is called even when
// a previous one fails.
func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, item := range h.handlers {
		if !item.Enabled(ctx, r.Level) {
			continue
		}
		if err := try(func() error { return item.Handle(ctx, r.Clone()) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *multiHandler) WithAttrs(attrs []Attr) slog.Handler {
	return &multiHandler{handlers: lo.Map(h.handlers, func(item LeveledHandler, _ int) LeveledHandler {
		return item.WithAttrs(attrs).(LeveledHandler)
	})}
}

// WithGroup implements slog.Handler.
func (h *multiHandler) WithGroup(name string) slog.Handler {
	return &multiHandler{handlers: lo.Map(h.handlers, func(item LeveledHandler, _ int) LeveledHandler {
		return item.WithGroup(name).(LeveledHandler)
	})}
}

// SetLevel implements LeveledHandler.
func (h *multiHandler) SetLevel(lvl Level) {
	lo.ForEach(h.handlers, func(item LeveledHandler, _ int) {
		item.SetLevel(lvl)
	})
}

// try turns a panic of fn into an error.
func try(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("log handler panic: %v", r)
		}
	}()
	return fn()
}
