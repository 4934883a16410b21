package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithWork starts the bubbletea program, runs workFn in a goroutine, and
// blocks until the program exits. workFn gets a send callback that forwards
// to tea.Program.Send with a short yield so bursts of row updates still
// render as individual frames.
func RunWithWork(out io.Writer, model ProgressModel, workFn func(send func(tea.Msg))) error {
	program := tea.NewProgram(model, tea.WithOutput(out))

	go func() {
		// Give the event loop time to draw the initial table.
		time.Sleep(50 * time.Millisecond)

		workFn(func(msg tea.Msg) {
			program.Send(msg)
			time.Sleep(5 * time.Millisecond)
		})

		program.Send(WorkDoneMsg{})
	}()

	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ProgressModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
