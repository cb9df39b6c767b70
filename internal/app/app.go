// Package app implements the application layer for waypoint.
package app

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/waypoint/internal/adapters/metrics"
	"go.trai.ch/waypoint/internal/adapters/watcher"
	"go.trai.ch/waypoint/internal/core/ports"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	metrics      *metrics.Metrics
	out          io.Writer
	workDir      string
	newWatcher   func() (ports.Watcher, error)
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, m *metrics.Metrics) *App {
	a := &App{
		configLoader: loader,
		logger:       log,
		metrics:      m,
		out:          os.Stdout,
		workDir:      ".",
	}
	a.newWatcher = func() (ports.Watcher, error) {
		return watcher.NewWatcher(a.logger)
	}
	return a
}

// WithOutput sets where command output is written.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkDir sets the directory the manifest search starts from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithWatcherFactory replaces the file watcher used for hot reload.
func (a *App) WithWatcherFactory(fn func() (ports.Watcher, error)) *App {
	a.newWatcher = fn
	return a
}

// WithTeaOptions adds bubbletea program options to the explorer.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// Logger returns the application logger.
func (a *App) Logger() ports.Logger {
	return a.logger
}

// JSONLogger is implemented by loggers that can switch to JSON output.
type JSONLogger interface {
	SetJSON(enable bool)
}

// SetJSON switches the logger to JSON output when it supports it.
func (a *App) SetJSON(enable bool) {
	if l, ok := a.logger.(JSONLogger); ok {
		l.SetJSON(enable)
	}
}
