package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/waypoint/cmd/waypoint/commands"
	"go.trai.ch/waypoint/internal/app"
	"go.trai.ch/waypoint/internal/build"
)

type mockApp struct {
	visitFunc   func(ctx context.Context, keys []string, opts app.VisitOptions) error
	questsFunc  func(ctx context.Context, ids []string, opts app.QuestOptions) error
	graphFunc   func(ctx context.Context, w io.Writer) error
	exploreFunc func(ctx context.Context, opts app.ExploreOptions) error
	json        bool
}

func (m *mockApp) Visit(ctx context.Context, keys []string, opts app.VisitOptions) error {
	if m.visitFunc != nil {
		return m.visitFunc(ctx, keys, opts)
	}
	return nil
}

func (m *mockApp) Quests(ctx context.Context, ids []string, opts app.QuestOptions) error {
	if m.questsFunc != nil {
		return m.questsFunc(ctx, ids, opts)
	}
	return nil
}

func (m *mockApp) Graph(ctx context.Context, w io.Writer) error {
	if m.graphFunc != nil {
		return m.graphFunc(ctx, w)
	}
	return nil
}

func (m *mockApp) Explore(ctx context.Context, opts app.ExploreOptions) error {
	if m.exploreFunc != nil {
		return m.exploreFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) SetJSON(enable bool) {
	m.json = enable
}

func TestCommands_Visit(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.VisitOptions
		var capturedKeys []string

		mock := &mockApp{
			visitFunc: func(_ context.Context, keys []string, opts app.VisitOptions) error {
				capturedOpts = opts
				capturedKeys = keys
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"visit", "hub", "forest", "--no-prefetch", "--wait", "-o", "linear", "--verbose", "--metrics"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"hub", "forest"}, capturedKeys)
		assert.Equal(t, app.VisitOptions{
			NoPrefetch: true,
			Wait:       true,
			OutputMode: "linear",
			Verbose:    true,
			Metrics:    true,
		}, capturedOpts)
		assert.False(t, mock.json)
	})

	t.Run("headless overrides output mode", func(t *testing.T) {
		var capturedOpts app.VisitOptions
		mock := &mockApp{
			visitFunc: func(_ context.Context, _ []string, opts app.VisitOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"visit", "hub", "-o", "linear", "--headless"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "headless", capturedOpts.OutputMode)
	})

	t.Run("json switches the logger", func(t *testing.T) {
		var capturedOpts app.VisitOptions
		mock := &mockApp{
			visitFunc: func(_ context.Context, _ []string, opts app.VisitOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"visit", "hub", "--json"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, capturedOpts.JSON)
		assert.True(t, mock.json)
	})

	t.Run("returns error on visit failure", func(t *testing.T) {
		mock := &mockApp{
			visitFunc: func(_ context.Context, _ []string, _ app.VisitOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"visit", "hub"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no zones provided", func(t *testing.T) {
		mock := &mockApp{
			visitFunc: func(_ context.Context, _ []string, _ app.VisitOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"visit"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Quest(t *testing.T) {
	var capturedIDs []string
	var capturedOpts app.QuestOptions
	mock := &mockApp{
		questsFunc: func(_ context.Context, ids []string, opts app.QuestOptions) error {
			capturedIDs = ids
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"quest", "lost-sword", "fresh", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, []string{"lost-sword", "fresh"}, capturedIDs)
	assert.True(t, capturedOpts.JSON)
	assert.True(t, mock.json)
}

func TestCommands_Graph(t *testing.T) {
	mock := &mockApp{
		graphFunc: func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "zones (0)\n")
			return err
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"graph"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "zones (0)\n", buf.String())
}

func TestCommands_Explore(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.ExploreOptions
	}{
		{name: "defaults", args: []string{"explore"}, want: app.ExploreOptions{}},
		{name: "start flag", args: []string{"explore", "--start", "hub", "--no-prefetch"}, want: app.ExploreOptions{NoPrefetch: true, Start: "hub"}},
		{name: "positional start", args: []string{"explore", "forest"}, want: app.ExploreOptions{Start: "forest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.ExploreOptions
			mock := &mockApp{
				exploreFunc: func(_ context.Context, opts app.ExploreOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "waypoint version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "commit: "+build.Commit)
}
