package webhook

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler consumes dispatched events.
type Handler interface {
	Name() string
	Handle(ctx context.Context, ev Event) error
}

type funcHandler struct {
	name string
	fn   func(ctx context.Context, ev Event) error
}

func (h funcHandler) Name() string { return h.name }

func (h funcHandler) Handle(ctx context.Context, ev Event) error { return h.fn(ctx, ev) }

// HandlerFunc adapts fn to a Handler named name.
func HandlerFunc(name string, fn func(ctx context.Context, ev Event) error) Handler {
	return funcHandler{name: name, fn: fn}
}

// Dispatcher manages registered handlers.
type Dispatcher struct {
	handlers map[string]Handler
	mu       sync.RWMutex
	logger   *otelzap.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *otelzap.Logger) *Dispatcher {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register adds h, replacing any handler with the same name.
func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[h.Name()] = h
}

// Names returns the sorted names of all registered handlers.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered handlers.
func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers)
}

func (d *Dispatcher) all() []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]Handler, 0, len(d.handlers))
	for _, h := range d.handlers {
		result = append(result, h)
	}
	return result
}

// Dispatch delivers ev to every handler in parallel and waits for them.
// A failing handler does not stop the others; its error is logged and
// returned.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) []error {
	handlers := d.all()

	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, h := range handlers {
		g.Go(func() error {
			if err := h.Handle(ctx, ev); err != nil {
				d.logger.Ctx(ctx).Error("Webhook handler failed",
					zap.String("handler", h.Name()),
					zap.String("event_id", ev.ID),
					zap.String("event_type", ev.Type),
					zap.Error(err),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", h.Name(), err))
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errs
}
