// Package questsync fetches quest documents and records the outcome in the context cache.
package questsync

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Sink receives fetch state transitions for a quest id.
// *contextcache.Cache satisfies it.
type Sink interface {
	SetLoading(id domain.QuestID, loading bool)
	SetContext(id domain.QuestID, payload *domain.ContextPayload)
	SetError(id domain.QuestID, message string)
}

// Fetcher drives the Sink: SetLoading(id, true) before a request, then exactly
// one of SetContext or SetError when it completes.
type Fetcher struct {
	source ports.QuestSource
	sink   Sink
	tracer ports.Tracer
	limit  int

	requestGroup singleflight.Group
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTracer sets the tracer wrapped around every fetch.
func WithTracer(t ports.Tracer) Option {
	return func(f *Fetcher) {
		if t != nil {
			f.tracer = t
		}
	}
}

// WithConcurrency bounds the number of quests FetchAll requests at once.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.limit = n
		}
	}
}

// New creates a Fetcher reading from source and writing to sink.
func New(source ports.QuestSource, sink Sink, opts ...Option) *Fetcher {
	f := &Fetcher{
		source: source,
		sink:   sink,
		tracer: nopTracer{},
		limit:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch loads the progress and definition documents of one quest.
// Concurrent calls for the same id share a single request.
func (f *Fetcher) Fetch(ctx context.Context, id domain.QuestID) error {
	if err := domain.ValidateQuestID(id); err != nil {
		return zerr.With(err, "quest", id.String())
	}

	_, err, _ := f.requestGroup.Do(id.String(), func() (any, error) {
		f.sink.SetLoading(id, true)

		payload, err := f.fetch(ctx, id)
		if err != nil {
			f.sink.SetError(id, err.Error())
			return nil, err
		}

		f.sink.SetContext(id, payload)
		return payload, nil
	})
	return err
}

func (f *Fetcher) fetch(ctx context.Context, id domain.QuestID) (*domain.ContextPayload, error) {
	ctx, span := f.tracer.Start(ctx, "quest.fetch", ports.WithAttribute("quest", id.String()))
	defer span.End()

	var payload domain.ContextPayload
	g, groupCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		progress, err := f.source.Progress(groupCtx, id)
		if err != nil {
			return err
		}
		payload.Progress = progress
		return nil
	})
	g.Go(func() error {
		definition, err := f.source.Definition(groupCtx, id)
		if err != nil {
			return err
		}
		payload.Definition = definition
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrQuestFetchFailed.Error()), "quest", id.String())
	}
	return &payload, nil
}

// FetchAll fetches every id with bounded concurrency. It does not stop at the
// first failure; all failures are joined into the returned error.
func (f *Fetcher) FetchAll(ctx context.Context, ids []domain.QuestID) error {
	if len(ids) == 0 {
		return domain.ErrNoQuestsSpecified
	}

	var (
		mu   sync.Mutex
		errs error
	)

	var g errgroup.Group
	g.SetLimit(f.limit)
	for _, id := range ids {
		g.Go(func() error {
			if err := f.Fetch(ctx, id); err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}
