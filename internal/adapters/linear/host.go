// Package linear provides a line-oriented render host for pipes and CI.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/engine/loader"
	"go.trai.ch/waypoint/internal/ui/output"
	"go.trai.ch/waypoint/internal/ui/style"
)

// Zones hands out the Future of a zone bundle.
type Zones interface {
	GetOrLoad(ctx context.Context, key domain.ZoneKey) *loader.Future[*domain.Bundle]
}

// Active exposes the active zone and accepts the redraw callback.
type Active interface {
	ActiveKey() domain.ZoneKey
	RegisterRedraw(fn func())
}

// Host prints one line per redraw: the active zone and the outcome of its load.
// With verbose set it also prints every traced load as it starts and ends.
type Host struct {
	out     io.Writer
	output  *termenv.Output
	zones   Zones
	active  Active
	visible bool
	verbose bool

	mu     sync.Mutex
	ctx    context.Context
	failed []domain.ZoneKey
}

// Option configures a Host.
type Option func(*Host)

// WithVerbose prints load activity reported through OnStart and OnEnd.
func WithVerbose(verbose bool) Option {
	return func(h *Host) {
		h.verbose = verbose
	}
}

// WithVisible sets what Visible reports. Hosts are visible by default.
func WithVisible(visible bool) Option {
	return func(h *Host) {
		h.visible = visible
	}
}

// NewHost creates a Host writing to out. A nil out writes to stdout.
func NewHost(out io.Writer, zones Zones, active Active, opts ...Option) *Host {
	if out == nil {
		out = os.Stdout
	}

	h := &Host{
		out:     out,
		output:  output.NewWithProfile(out, output.ColorProfileANSI),
		zones:   zones,
		active:  active,
		visible: true,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind registers the host's redraw callback. Loads awaited during a redraw
// stop waiting when ctx ends.
func (h *Host) Bind(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()

	h.active.RegisterRedraw(h.Redraw)
}

// Available reports true: a linear host always has somewhere to write.
func (h *Host) Available() bool { return true }

// Visible reports whether output is shown to the user.
func (h *Host) Visible() bool { return h.visible }

// Redraw prints the active zone, waiting for its bundle to load.
func (h *Host) Redraw() {
	h.mu.Lock()
	ctx := h.ctx
	h.mu.Unlock()

	key := h.active.ActiveKey()
	if key.IsZero() {
		h.println(h.output.String(style.Circle + " no active zone").Faint().String())
		return
	}

	b, err := h.zones.GetOrLoad(ctx, key).Wait(ctx)
	if err != nil {
		h.mu.Lock()
		h.failed = append(h.failed, key)
		h.mu.Unlock()
		h.println(fmt.Sprintf("%s %s %s",
			h.colored(style.Cross, style.Red), key,
			h.output.String(err.Error()).Faint().String()))
		return
	}

	h.println(fmt.Sprintf("%s %s %s",
		h.colored(style.Dot, style.Green), key,
		h.output.String(fmt.Sprintf("%d bytes, digest %s", b.Size, b.Digest)).Faint().String()))
}

// Failed returns the zones whose load failed during a redraw, in redraw order.
func (h *Host) Failed() []domain.ZoneKey {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.failed)
}

// OnStart implements ports.Activity.
func (h *Host) OnStart(operation, subject string) {
	if !h.verbose {
		return
	}
	h.println(h.output.String(fmt.Sprintf("  %s %s %s", style.Arrow, operation, subject)).Faint().String())
}

// OnEnd implements ports.Activity.
func (h *Host) OnEnd(operation, subject string, err error) {
	if !h.verbose {
		return
	}
	mark := h.colored(style.Check, style.Green)
	if err != nil {
		mark = h.colored(style.Cross, style.Red)
	}
	h.println(fmt.Sprintf("  %s %s", mark, h.output.String(operation+" "+subject).Faint().String()))
}

func (h *Host) colored(s string, c lipgloss.Color) string {
	return h.output.String(s).Foreground(h.output.Color(string(c))).String()
}

func (h *Host) println(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = fmt.Fprintln(h.out, line)
}
