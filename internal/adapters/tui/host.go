package tui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/waypoint/internal/ui/output"
)

// Host runs the explorer as the render host.
type Host struct {
	program *tea.Program
	model   *Model
}

// NewHost creates a Host rendering model to w. A nil w renders to stdout.
// The terminal is asked to report focus changes, which drive Visible.
func NewHost(model *Model, w io.Writer, opts ...tea.ProgramOption) *Host {
	if w == nil {
		w = os.Stdout
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	opts = append([]tea.ProgramOption{
		tea.WithContext(model.ctx),
		tea.WithOutput(w),
		tea.WithReportFocus(),
	}, opts...)

	return &Host{
		program: tea.NewProgram(model, opts...),
		model:   model,
	}
}

// Bind installs the host's redraw callback on the store.
func (h *Host) Bind(store interface{ RegisterRedraw(fn func()) }) {
	store.RegisterRedraw(h.redraw)
}

func (h *Host) redraw() {
	h.program.Send(MsgRedraw{})
}

// Run blocks until the explorer exits.
func (h *Host) Run() error {
	_, err := h.program.Run()
	return err
}

// Available reports true: the explorer is a client context.
func (h *Host) Available() bool { return h.model.focus.Available() }

// Visible reports whether the terminal has focus.
func (h *Host) Visible() bool { return h.model.focus.Visible() }

// OnStart forwards the start of a traced operation to the explorer.
func (h *Host) OnStart(operation, subject string) {
	h.program.Send(MsgActivity{Operation: operation, Subject: subject})
}

// OnEnd forwards the end of a traced operation to the explorer.
func (h *Host) OnEnd(operation, subject string, err error) {
	h.program.Send(MsgActivity{Operation: operation, Subject: subject, Done: true, Err: err})
}

// Program returns the underlying tea.Program for testing.
func (h *Host) Program() *tea.Program {
	return h.program
}
