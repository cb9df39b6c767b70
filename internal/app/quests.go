package app

import (
	"context"
	"fmt"

	"go.trai.ch/waypoint/internal/adapters/questfs"
	"go.trai.ch/waypoint/internal/adapters/telemetry"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/engine/contextcache"
	"go.trai.ch/waypoint/internal/engine/questsync"
	"go.trai.ch/waypoint/internal/ui/output"
	"go.trai.ch/waypoint/internal/ui/style"
)

// QuestOptions configuration for the Quests method.
type QuestOptions struct {
	// JSON prints the quest states as JSON.
	JSON bool
}

// QuestSummary is the context cache state of one quest.
type QuestSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Zone    string `json:"zone,omitempty"`
	Step    int    `json:"step"`
	Steps   int    `json:"steps"`
	Started bool   `json:"started"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Quests fetches the contexts of the given quests and prints their state.
// Every quest is printed even when some fetches fail; the failures are then
// returned together.
func (a *App) Quests(ctx context.Context, ids []string, opts QuestOptions) error {
	if len(ids) == 0 {
		return domain.ErrNoQuestsSpecified
	}

	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}

	provider := telemetry.NewProvider()
	defer func() { _ = provider.Shutdown(context.WithoutCancel(ctx)) }()

	contexts := contextcache.New(
		contextcache.WithMax(manifest.ContextCacheMax),
		contextcache.WithRecorder(a.metrics),
	)
	fetcher := questsync.New(questfs.NewSource(manifest.QuestDir), contexts,
		questsync.WithTracer(provider.Tracer()))

	questIDs := make([]domain.QuestID, len(ids))
	for i, id := range ids {
		questIDs[i] = domain.QuestID(id)
	}
	fetchErr := fetcher.FetchAll(ctx, questIDs)

	summaries := make([]QuestSummary, 0, len(questIDs))
	for _, id := range questIDs {
		summaries = append(summaries, summarizeQuest(id, contexts.Lookup(id)))
	}

	if opts.JSON {
		if err := writeJSON(a.out, summaries); err != nil {
			return err
		}
	} else {
		a.printQuests(summaries)
	}

	return fetchErr
}

func summarizeQuest(id domain.QuestID, e contextcache.Entry) QuestSummary {
	s := QuestSummary{ID: id.String(), Loading: e.Loading, Error: e.Error}
	if e.Context == nil {
		// Invalid ids are rejected before the cache is touched.
		if err := domain.ValidateQuestID(id); err != nil && s.Error == "" {
			s.Error = err.Error()
		}
		return s
	}
	if def := e.Context.Definition; def != nil {
		s.Title = def.Title
		s.Zone = def.Zone.String()
		s.Steps = len(def.Steps)
	}
	if p := e.Context.Progress; p != nil {
		s.Started = true
		s.Step = p.Step
	}
	return s
}

func (a *App) printQuests(summaries []QuestSummary) {
	out := output.NewWithProfile(a.out, output.ColorProfileANSI)

	for _, q := range summaries {
		switch {
		case q.Error != "":
			_, _ = fmt.Fprintf(a.out, "%s %s %s\n",
				out.String(style.Cross).Foreground(out.Color(string(style.Red))),
				q.ID, out.String(q.Error).Faint())
		case q.Title == "":
			_, _ = fmt.Fprintf(a.out, "%s %s %s\n",
				out.String(style.Circle).Faint(), q.ID, out.String("no context").Faint())
		case !q.Started:
			_, _ = fmt.Fprintf(a.out, "%s %s %s %s\n",
				out.String(style.Circle).Faint(), q.ID, q.Title,
				out.String(fmt.Sprintf("not started, zone %s", q.Zone)).Faint())
		default:
			_, _ = fmt.Fprintf(a.out, "%s %s %s %s\n",
				out.String(style.Check).Foreground(out.Color(string(style.Green))), q.ID, q.Title,
				out.String(fmt.Sprintf("step %d/%d, zone %s", q.Step, q.Steps, q.Zone)).Faint())
		}
	}
}
