package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/waypoint/internal/adapters/detector"
	"go.trai.ch/waypoint/internal/adapters/linear"
	"go.trai.ch/waypoint/internal/adapters/telemetry"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
	"go.trai.ch/waypoint/internal/engine/loader"
	"go.trai.ch/waypoint/internal/engine/router"
	"go.trai.ch/waypoint/internal/ui/output"
	"go.trai.ch/waypoint/internal/ui/style"
	"go.trai.ch/zerr"
)

// VisitOptions configuration for the Visit method.
type VisitOptions struct {
	// NoPrefetch skips warming the neighbors of each visited zone.
	NoPrefetch bool
	// Wait blocks until background prefetches settle before the summary.
	Wait bool
	// OutputMode is the --output-mode flag value.
	OutputMode string
	// JSON prints the summary as JSON and nothing else.
	JSON bool
	// Verbose prints every load as it starts and ends.
	Verbose bool
	// Metrics prints the Prometheus metrics after the summary.
	Metrics bool
}

// Summary is the cache state at the end of a visit.
type Summary struct {
	Active string        `json:"active"`
	Zones  []ZoneSummary `json:"zones"`
	Failed []string      `json:"failed,omitempty"`
}

// ZoneSummary is the loader cache state of one zone.
type ZoneSummary struct {
	Key   string `json:"key"`
	State string `json:"state"`
}

type noPrefetch struct{}

func (noPrefetch) Prefetch(context.Context, domain.ZoneKey) {}

// Visit feeds the keys to the zone router one at a time, drawing the active
// zone after each one, and then prints the cache summary.
func (a *App) Visit(ctx context.Context, keys []string, opts VisitOptions) error {
	if len(keys) == 0 {
		return domain.ErrNoZonesSpecified
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)

	s, err := a.openSession(mode == detector.ModeHeadless)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	hostOut := a.out
	if opts.JSON {
		hostOut = io.Discard
	}
	lh := linear.NewHost(hostOut, s.zones, s.store, linear.WithVerbose(opts.Verbose))
	lh.Bind(ctx)
	s.provider.Register(telemetry.NewBridge(lh))

	var host ports.Host = lh
	if mode == detector.ModeHeadless {
		host = detector.NewStaticHost(mode)
	}

	var prefetcher router.Prefetcher = s.zones
	if opts.NoPrefetch {
		prefetcher = noPrefetch{}
	}
	r := router.New(s.registry, s.graph, prefetcher, s.store, host,
		router.WithLogger(a.logger, s.manifest.Development))

	for _, key := range keys {
		r.Sync(ctx, domain.ZoneKey(key), true)
		if host.Available() {
			s.store.Invalidate()
		}
	}

	if opts.Wait {
		if err := s.zones.WaitIdle(ctx); err != nil {
			return err
		}
	}

	summary := summarize(s, lh.Failed())
	if opts.JSON {
		if err := writeJSON(a.out, summary); err != nil {
			return err
		}
	} else {
		a.printSummary(summary)
	}

	if opts.Metrics && a.metrics != nil {
		if err := a.metrics.WriteText(a.out); err != nil {
			return err
		}
	}

	if len(summary.Failed) > 0 {
		return zerr.With(domain.ErrVisitFailed, "zones", strings.Join(summary.Failed, ", "))
	}
	return nil
}

func summarize(s *session, failed []domain.ZoneKey) Summary {
	summary := Summary{Active: s.store.ActiveKey().String()}
	for _, spec := range s.manifest.Zones {
		summary.Zones = append(summary.Zones, ZoneSummary{
			Key:   spec.Key.String(),
			State: s.zones.State(spec.Key).String(),
		})
	}
	for _, key := range failed {
		summary.Failed = append(summary.Failed, key.String())
	}
	return summary
}

func (a *App) printSummary(summary Summary) {
	out := output.NewWithProfile(a.out, output.ColorProfileANSI)

	active := summary.Active
	if active == "" {
		active = "none"
	}
	_, _ = fmt.Fprintf(a.out, "\nactive: %s\n", out.String(active).Bold())

	for _, z := range summary.Zones {
		glyph := out.String(style.Circle).Faint()
		switch z.State {
		case loader.EntrySettled.String():
			glyph = out.String(style.Check).Foreground(out.Color(string(style.Green)))
		case loader.EntryPending.String():
			glyph = out.String(style.Ellipse).Foreground(out.Color(string(style.Yellow)))
		}
		_, _ = fmt.Fprintf(a.out, "  %s %s %s\n", glyph, z.Key, out.String(z.State).Faint())
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
