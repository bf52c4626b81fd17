package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

// editContextMsg is sent when editing produced a new context.
type editContextMsg struct{ data lang.Context }

// editCancelledMsg is sent when the user emptied or declined the edit.
type editCancelledMsg struct{}

// editErrorMsg is sent when the edit process fails.
type editErrorMsg struct{ err error }

const (
	prompt        = "➜ "
	commandPrefix = ":"
)

func helpMessage() string {
	return `
Commands:

  :help              Print this help
  :vars              List top-level context names
  :set PATH=VALUE    Bind a dotted path to a YAML value
  :edit              Edit the context as YAML in $EDITOR
  :clear             Clear screen
  :quit              Exit REPL

Usage:
  Type an expression to evaluate it against the context
  Completions of context paths appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to abandon the current candidate
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatEcho formats the echo of a submitted line.
func formatEcho(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

func isCommand(input string) bool { return strings.HasPrefix(input, commandPrefix) }

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	data         lang.Context
	opts         []lang.Option
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts an interactive evaluator over data. Submitted lines are kept in
// the history file at historyPath; an empty path disables persistence.
func Run(
	ctx context.Context,
	data lang.Context,
	historyPath string,
	logger log.Logger,
	opts ...lang.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if data == nil {
		data = lang.Context{}
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("history_count", history.Len()),
		slog.Int("names", len(data)))

	m := newModel(ctx, data, history, logger, opts...)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	data lang.Context,
	history *History,
	logger log.Logger,
	opts ...lang.Option,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		data:       data,
		opts:       append([]lang.Option{lang.WithLogger(logger)}, opts...),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil

	case editContextMsg:
		m.data = msg.data
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("names", len(m.data)))

		return m, tea.Println(resultStyle.Render("context updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type an expression, or :help for commands"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			refreshMatches(&m)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// cycle moves the selected candidate by step, starting tab-cycling if it is
// not active. A single candidate is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes completions for the current input.
func refreshMatches(m *model) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) historyMove(step int) model {
	idx := m.historyIdx + step
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx
	m.tabActive = false

	line, err := m.history.Entry(idx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	refreshMatches(&m)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if _, err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not write history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatEcho(input))

	if isCommand(input) {
		var cmd tea.Cmd

		m, cmd = m.executeCommand(strings.TrimPrefix(input, commandPrefix))

		return m, tea.Sequence(echo, cmd)
	}

	result, err := m.evaluate(input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(result)))
}

// evaluate returns the stringified value of expr against the context.
func (m model) evaluate(expr string) (string, error) {
	v, err := lang.EvaluateExpression(m.ctxFunc(), expr, m.data, m.opts...)
	if err != nil {
		return "", err
	}

	return lang.FormatValue(v), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.String("argument", arg))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	case "h", "help":
		return m, tea.Println(helpMessage())

	case "v", "vars":
		return m, tea.Println(m.listVars())

	case "s", "set":
		data, err := m.set(arg)
		if err != nil {
			return m, tea.Println(errorStyle.Render("error: " + err.Error()))
		}

		m.data = data

		return m, nil

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, m.edit()

	default:
		return m, tea.Println(
			errorStyle.Render("unknown command: " + name + " (try :help)"))
	}
}

// set returns a copy of the context with the "path=value" assignment in arg
// applied.
func (m model) set(arg string) (lang.Context, error) {
	path, value, ok := strings.Cut(arg, "=")
	path = strings.TrimSpace(path)

	if !ok || path == "" {
		return nil, ErrInvalidAssignment.With(slog.String("set", arg))
	}

	data := m.data.Merge(nil)
	if err := data.Set(path, lang.ParseScalar(strings.TrimSpace(value))); err != nil {
		return nil, err
	}

	return data, nil
}

func (m model) edit() tea.Cmd {
	cmd := &editContextCommand{
		data:    m.data,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined), err == nil && cmd.newData == nil:
			return editCancelledMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		default:
			return editContextMsg{data: cmd.newData}
		}
	})
}

func (m model) listVars() string {
	var b strings.Builder

	for _, name := range m.data.Names() {
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(formatPreview(m.data[name])))
	}

	return b.String()
}
