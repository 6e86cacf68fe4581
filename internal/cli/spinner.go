package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
	err      error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case doneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

type doneMsg struct {
	err error
}

// ExecuteWithSpinner runs executeFn while showing a spinner with the given
// message. Without a TTY it prints the message and runs directly.
func ExecuteWithSpinner[T any](message string, executeFn func() (T, error)) (T, error) {
	if !IsATTY() {
		fmt.Fprintf(os.Stderr, "%s\n", message)
		return executeFn()
	}

	var result T
	var execErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		result, execErr = executeFn()
	}()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(os.Stderr))
	go func() {
		wg.Wait()
		p.Send(doneMsg{err: execErr})
	}()

	if _, err := p.Run(); err != nil {
		// Spinner failure is cosmetic; fall back to the plain result.
		wg.Wait()
	}
	return result, execErr
}

// IsATTY reports whether stdout is a terminal.
func IsATTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
