package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/waypoint/internal/adapters/bundle"
	"go.trai.ch/waypoint/internal/adapters/config"
	"go.trai.ch/waypoint/internal/adapters/metrics"
	"go.trai.ch/waypoint/internal/app"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
	"go.trai.ch/waypoint/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const manifest = `version: "1"
development: %t
bundles: bundles
quests: quests
zones:
  hub: { bundle: hub.bundle }
  forest: { bundle: forest.bundle }
  cave: { bundle: cave.bundle }
adjacency:
  hub: [forest, cave, swamp]
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newProject lays out a project with two loadable bundles, a missing one and
// three quests, and returns its root.
func newProject(t *testing.T, development bool) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv("WAYPOINT_DEVELOPMENT", "")
	t.Setenv("WAYPOINT_CONTEXT_MAX", "")
	t.Setenv("WAYPOINT_QUESTS_DIR", "")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, domain.ManifestFileName), fmt.Sprintf(manifest, development))
	writeFile(t, filepath.Join(root, "bundles", "hub.bundle"), "hub-data")
	writeFile(t, filepath.Join(root, "bundles", "forest.bundle"), "forest")
	writeFile(t, filepath.Join(root, "quests", "lost-sword", "definition.yaml"),
		"title: The Lost Sword\nzone: forest\nsteps: [hilt, blade, smith]\n")
	writeFile(t, filepath.Join(root, "quests", "lost-sword", "progress.yaml"), "step: 2\n")
	writeFile(t, filepath.Join(root, "quests", "fresh", "definition.yaml"), "title: Fresh Start\nzone: hub\n")
	return root
}

func newApp(t *testing.T, root string) (*app.App, *bytes.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	var out bytes.Buffer
	a := app.New(config.NewLoader(log), log, metrics.NewWithRegistry(prometheus.NewRegistry())).
		WithOutput(&out).
		WithWorkDir(root)
	return a, &out
}

func TestApp_Visit(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	err := a.Visit(context.Background(), []string{"hub"}, app.VisitOptions{Wait: true})

	require.NoError(t, err)
	want := fmt.Sprintf("● hub 8 bytes, digest %s\n", bundle.Digest([]byte("hub-data"))) +
		"\nactive: hub\n" +
		"  ✓ hub settled\n" +
		"  ✓ forest settled\n" +
		"  ○ cave absent\n"
	assert.Equal(t, want, out.String())
}

func TestApp_Visit_Sequence(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	err := a.Visit(context.Background(), []string{"forest", "nowhere", "hub"}, app.VisitOptions{NoPrefetch: true})

	require.NoError(t, err)
	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "● forest 6 bytes"))
	assert.Equal(t, "○ no active zone", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "● hub 8 bytes"))
	assert.Contains(t, out.String(), "active: hub")
}

func TestApp_Visit_NoPrefetch(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	require.NoError(t, a.Visit(context.Background(), []string{"hub"}, app.VisitOptions{NoPrefetch: true, Wait: true}))

	assert.Contains(t, out.String(), "  ○ forest absent\n")
}

func TestApp_Visit_LoadFailure(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	err := a.Visit(context.Background(), []string{"cave"}, app.VisitOptions{NoPrefetch: true})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrVisitFailed.Error())
	assert.Contains(t, out.String(), "✗ cave failed to load zone bundle: bundle not found")
}

func TestApp_Visit_Headless(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	err := a.Visit(context.Background(), []string{"hub"}, app.VisitOptions{OutputMode: "headless", Wait: true})

	require.NoError(t, err)
	assert.Equal(t, "\nactive: none\n  ○ hub absent\n  ○ forest absent\n  ○ cave absent\n", out.String())
}

func TestApp_Visit_JSON(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	require.NoError(t, a.Visit(context.Background(), []string{"hub"}, app.VisitOptions{JSON: true, Wait: true}))

	var summary app.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, app.Summary{
		Active: "hub",
		Zones: []app.ZoneSummary{
			{Key: "hub", State: "settled"},
			{Key: "forest", State: "settled"},
			{Key: "cave", State: "absent"},
		},
	}, summary)
}

func TestApp_Visit_Metrics(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	require.NoError(t, a.Visit(context.Background(), []string{"hub"}, app.VisitOptions{Wait: true, Metrics: true}))

	assert.Contains(t, out.String(), `waypoint_loader_requests_total{result="miss"} 3`)
	assert.Contains(t, out.String(), "waypoint_loader_failures_total 1")
}

func TestApp_Visit_NoZones(t *testing.T) {
	a, _ := newApp(t, t.TempDir())

	err := a.Visit(context.Background(), nil, app.VisitOptions{})

	assert.ErrorIs(t, err, domain.ErrNoZonesSpecified)
}

func TestApp_Visit_NoManifest(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	a, _ := newApp(t, t.TempDir())

	err := a.Visit(context.Background(), []string{"hub"}, app.VisitOptions{})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestApp_Quests(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	err := a.Quests(context.Background(), []string{"lost-sword", "fresh", "missing"}, app.QuestOptions{})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrQuestNotFound.Error())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "✓ lost-sword The Lost Sword step 2/3, zone forest", lines[0])
	assert.Equal(t, "○ fresh Fresh Start not started, zone hub", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "✗ missing "))
	assert.Contains(t, lines[2], domain.ErrQuestNotFound.Error())
}

func TestApp_Quests_InvalidID(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	err := a.Quests(context.Background(), []string{"../x", "lost-sword"}, app.QuestOptions{})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidQuestID.Error())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "✗ ../x "+domain.ErrInvalidQuestID.Error(), lines[0])
	assert.Equal(t, "✓ lost-sword The Lost Sword step 2/3, zone forest", lines[1])
}

func TestApp_Quests_JSON(t *testing.T) {
	root := newProject(t, false)
	a, out := newApp(t, root)

	require.NoError(t, a.Quests(context.Background(), []string{"lost-sword"}, app.QuestOptions{JSON: true}))

	var quests []app.QuestSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &quests))
	assert.Equal(t, []app.QuestSummary{{
		ID: "lost-sword", Title: "The Lost Sword", Zone: "forest",
		Step: 2, Steps: 3, Started: true,
	}}, quests)
}

func TestApp_Quests_NoIDs(t *testing.T) {
	a, _ := newApp(t, t.TempDir())

	assert.ErrorIs(t, a.Quests(context.Background(), nil, app.QuestOptions{}), domain.ErrNoQuestsSpecified)
}

func TestApp_Graph(t *testing.T) {
	root := newProject(t, false)
	a, _ := newApp(t, root)

	var buf bytes.Buffer
	require.NoError(t, a.Graph(context.Background(), &buf))

	g := goldie.New(t)
	g.Assert(t, "graph", buf.Bytes())
}

type idleWatcher struct {
	started chan string
}

func (w *idleWatcher) Start(_ context.Context, root string) error {
	w.started <- root
	return nil
}

func (w *idleWatcher) Stop() error { return nil }

func (w *idleWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(func(ports.WatchEvent) bool) {}
}

func TestApp_Explore(t *testing.T) {
	root := newProject(t, true)
	a, _ := newApp(t, root)

	w := &idleWatcher{started: make(chan string, 1)}
	a.WithWatcherFactory(func() (ports.Watcher, error) { return w, nil }).
		WithTeaOptions(
			tea.WithInput(strings.NewReader("jq")),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)

	err := a.Explore(context.Background(), app.ExploreOptions{Start: "hub"})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "bundles"), <-w.started)
}
