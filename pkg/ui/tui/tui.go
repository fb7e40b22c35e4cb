package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"lcstats/pkg/models"
	"lcstats/pkg/processor"
)

// TUI shows run progress in a full-screen terminal view.
// It implements processor.Observer by forwarding events to the program.
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a new TUI. onQuit is called if the user quits before
// the run finishes; callers use it to cancel the run context.
func NewTUI(onQuit func(), opts ...tea.ProgramOption) *TUI {
	model := NewModel(onQuit)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)

	return &TUI{
		program: tea.NewProgram(model, opts...),
		model:   model,
	}
}

// Start runs the TUI until the run finishes or the user quits
func (t *TUI) Start() error {
	_, err := t.program.Run()
	return err
}

// Send sends a message to the TUI
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

func (t *TUI) RunStarted(runID string, rows int) {
	t.Send(RunStartedMsg{RunID: runID, Rows: rows})
}

func (t *TUI) RowSkipped(row models.InputRow, reason string) {
	t.Send(RowSkippedMsg{Row: row, Reason: reason})
}

func (t *TUI) LookupStarted(row models.InputRow, username string) {
	t.Send(LookupStartedMsg{Row: row, Username: username})
}

func (t *TUI) LookupFinished(row models.OutputRow) {
	t.Send(LookupFinishedMsg{Row: row})
}

func (t *TUI) RunFinished(summary processor.Summary) {
	t.Send(RunFinishedMsg{Summary: summary})
}

// LogInfo adds an info line to the log panel
func (t *TUI) LogInfo(message string) {
	t.Send(LogMsg{Level: "INFO", Message: message})
}

var _ processor.Observer = (*TUI)(nil)
