package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressImpl draws with bubbletea on a colour terminal and falls back to
// plain lines otherwise.
type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress backed by the given theme and headless
// manager, drawing to w. A nil w means os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager, w io.Writer) Progress {
	if w == nil {
		w = os.Stdout
	}
	return &progressImpl{theme: theme, headless: hm, writer: w}
}

func (p *progressImpl) plain() bool {
	return p.headless.IsHeadless() || p.theme.NoColor
}

// Files starts a file tracker: an animated bar, or one line per file.
func (p *progressImpl) Files(total int) FileTracker {
	if p.plain() {
		return &lineTracker{theme: p.theme, writer: p.writer, tally: FileTally{Total: total}}
	}
	return newBarTracker(p.theme, total, p.writer)
}

// Spin starts a spinner, or prints the title as a line.
func (p *progressImpl) Spin(title string) Task {
	if p.plain() {
		return newLineTask(p.theme, title, p.writer)
	}
	return newSpinnerTask(p.theme, title, p.writer)
}

// Step prints the title before the child process runs and a status line
// after it.
func (p *progressImpl) Step(title string) Task {
	return newLineTask(p.theme, title, p.writer)
}

// newProgram creates a program that draws to w and never reads stdin, so
// it cannot steal keystrokes from prompts or child processes.
func newProgram(m tea.Model, w io.Writer) *tea.Program {
	return tea.NewProgram(m, tea.WithOutput(w), tea.WithInput(nil))
}

func (t *FileTally) record(written bool) {
	if written {
		t.Written++
	} else {
		t.Kept++
	}
}

func tallyLine(t FileTally) string {
	return fmt.Sprintf("%d files: %d written, %d kept", t.Seen(), t.Written, t.Kept)
}

func fileLine(t FileTally, path string, written bool) string {
	line := fmt.Sprintf("[%d/%d] %s", t.Seen(), t.Total, path)
	if !written {
		line += " (kept)"
	}
	return line
}

func taskLine(theme *Theme, title string, err error) string {
	if err != nil {
		return theme.SymError() + " " + title
	}
	return theme.SymSuccess() + " " + title
}

// --- file bar ---

// fileRecordedMsg reports one file handled by the deployer.
type fileRecordedMsg struct {
	path    string
	written bool
}

// filesDoneMsg closes the bar.
type filesDoneMsg struct{}

// fileModel is the bubbletea Model for the file bar.
type fileModel struct {
	theme   *Theme
	bar     progress.Model
	tally   FileTally
	current string
	written bool
	done    bool
}

func newFileModel(theme *Theme, total int) fileModel {
	bar := progress.New(
		progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	return fileModel{theme: theme, bar: bar, tally: FileTally{Total: total}}
}

func (m fileModel) Init() tea.Cmd {
	return nil
}

func (m fileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileRecordedMsg:
		m.tally.record(msg.written)
		m.current = msg.path
		m.written = msg.written
		return m, nil
	case filesDoneMsg:
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m fileModel) View() string {
	if m.done {
		return taskLine(m.theme, tallyLine(m.tally), nil) + "\n"
	}
	pct := 0.0
	if m.tally.Total > 0 {
		pct = float64(m.tally.Seen()) / float64(m.tally.Total)
	}
	return m.bar.ViewAs(pct) + " " + fileLine(m.tally, m.current, m.written) + "\n"
}

// barTracker drives a fileModel program.
type barTracker struct {
	program *tea.Program
	tally   FileTally
	once    sync.Once
}

// @MX:WARN: [AUTO] Done blocks until the program goroutine exits; every tracker must be closed.
// @MX:REASON: [AUTO] the goroutine lifetime is bound to the tea.Program lifetime
func newBarTracker(theme *Theme, total int, w io.Writer) *barTracker {
	p := newProgram(newFileModel(theme, total), w)
	go func() {
		_, _ = p.Run()
	}()
	return &barTracker{program: p, tally: FileTally{Total: total}}
}

func (b *barTracker) Record(path string, written bool) {
	b.tally.record(written)
	b.program.Send(fileRecordedMsg{path: path, written: written})
}

func (b *barTracker) Done() FileTally {
	b.once.Do(func() {
		b.program.Send(filesDoneMsg{})
		b.program.Wait()
	})
	return b.tally
}

// lineTracker prints one line per file.
type lineTracker struct {
	theme  *Theme
	writer io.Writer
	tally  FileTally
	closed bool
}

func (l *lineTracker) Record(path string, written bool) {
	l.tally.record(written)
	_, _ = fmt.Fprintln(l.writer, fileLine(l.tally, path, written))
}

func (l *lineTracker) Done() FileTally {
	if !l.closed {
		l.closed = true
		_, _ = fmt.Fprintln(l.writer, taskLine(l.theme, tallyLine(l.tally), nil))
	}
	return l.tally
}

// --- spinner ---

// spinnerDoneMsg stops the spinner with the task outcome.
type spinnerDoneMsg struct{ err error }

// spinnerModel is the bubbletea Model for the task spinner.
type spinnerModel struct {
	theme   *Theme
	spinner spinner.Model
	title   string
	err     error
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	return spinnerModel{theme: theme, spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return taskLine(m.theme, m.title, m.err) + "\n"
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// spinnerTask drives a spinnerModel program.
type spinnerTask struct {
	program *tea.Program
	once    sync.Once
}

// @MX:WARN: [AUTO] Done blocks until the program goroutine exits; every spinner must be stopped.
// @MX:REASON: [AUTO] the goroutine lifetime is bound to the tea.Program lifetime
func newSpinnerTask(theme *Theme, title string, w io.Writer) *spinnerTask {
	p := newProgram(newSpinnerModel(theme, title), w)
	go func() {
		_, _ = p.Run()
	}()
	return &spinnerTask{program: p}
}

func (s *spinnerTask) Done(err error) {
	s.once.Do(func() {
		s.program.Send(spinnerDoneMsg{err: err})
		s.program.Wait()
	})
}

// --- line task ---

// lineTask prints the title when it starts and a status line when it ends.
type lineTask struct {
	theme  *Theme
	title  string
	writer io.Writer
	once   sync.Once
}

func newLineTask(theme *Theme, title string, w io.Writer) *lineTask {
	_, _ = fmt.Fprintln(w, theme.SymProgress()+" "+title)
	return &lineTask{theme: theme, title: title, writer: w}
}

func (l *lineTask) Done(err error) {
	l.once.Do(func() {
		_, _ = fmt.Fprintln(l.writer, taskLine(l.theme, l.title, err))
	})
}

// --- discard ---

type discardProgress struct{}

// Discard returns a Progress that draws nothing. Its trackers still count.
func Discard() Progress {
	return discardProgress{}
}

func (discardProgress) Files(total int) FileTracker {
	return &countTracker{tally: FileTally{Total: total}}
}

func (discardProgress) Spin(string) Task { return discardTask{} }

func (discardProgress) Step(string) Task { return discardTask{} }

type countTracker struct {
	tally FileTally
}

func (c *countTracker) Record(_ string, written bool) { c.tally.record(written) }

func (c *countTracker) Done() FileTally { return c.tally }

type discardTask struct{}

func (discardTask) Done(error) {}
