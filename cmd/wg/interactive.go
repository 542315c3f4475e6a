package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fbkclanna/wg/internal/workspace"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

var errAborted = errors.New("user aborted")

// memberModel collects comma-separated member names of one kind. Names are
// checked as they are typed and listed below the input.
type memberModel struct {
	kind      workspace.MemberKind
	textInput textinput.Model
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func newMemberModel(kind workspace.MemberKind, taken map[string]bool) memberModel {
	ti := textinput.New()
	ti.Placeholder = "core, utils"
	if kind == workspace.Binary {
		ti.Placeholder = "app"
	}
	ti.Focus()
	return memberModel{kind: kind, textInput: ti, validate: memberValidator(taken)}
}

func (m memberModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m memberModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.errMsg != "" {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.errMsg = ""
	if err := m.validate(m.textInput.Value()); err != nil {
		m.errMsg = err.Error()
	}
	return m, cmd
}

func (m memberModel) names() []string {
	return splitNames(m.textInput.Value())
}

func (m memberModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(kindTitle(m.kind)+" members") + hintStyle.Render(" (comma-separated, empty for none)") + "\n")
	b.WriteString(m.textInput.View() + "\n")
	switch names := m.names(); {
	case m.errMsg != "":
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	case len(names) > 0:
		b.WriteString(hintStyle.Render(fmt.Sprintf("%d %s: %s", len(names), plural(m.kind, len(names)), strings.Join(names, ", "))) + "\n")
	}
	return b.String()
}

// reviewModel shows the assembled request before anything is written. The
// git flag can be toggled here; enter creates, esc or n cancels.
type reviewModel struct {
	req     workspace.Request
	done    bool
	aborted bool
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc", "n", "N", "q":
			m.aborted = true
			return m, tea.Quit
		case "enter", "y", "Y":
			m.done = true
			return m, tea.Quit
		case "g", "tab", " ":
			m.req.Git = !m.req.Git
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create workspace at "+m.req.Path) + "\n")
	row := func(label, value string) {
		_, _ = fmt.Fprintf(&b, "  %-10s %s\n", label, value)
	}
	row("libraries", listOrNone(m.req.Libs))
	row("binaries", listOrNone(m.req.Bins))
	if m.req.Toolchain != "" {
		row("toolchain", m.req.Toolchain)
	}
	git := "no"
	if m.req.Git {
		git = onStyle.Render("yes")
	}
	row("git init", git)
	b.WriteString(hintStyle.Render("enter create  g toggle git  esc cancel") + "\n")
	return b.String()
}

func kindTitle(kind workspace.MemberKind) string {
	if kind == workspace.Binary {
		return "Binary"
	}
	return "Library"
}

func plural(kind workspace.MemberKind, n int) string {
	switch {
	case n == 1:
		return kind.String()
	case kind == workspace.Binary:
		return "binaries"
	default:
		return "libraries"
	}
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func promptMembers(kind workspace.MemberKind, taken map[string]bool) ([]string, error) {
	result, err := tea.NewProgram(newMemberModel(kind, taken)).Run()
	if err != nil {
		return nil, err
	}
	rm := result.(memberModel)
	if rm.aborted {
		return nil, errAborted
	}
	return rm.names(), nil
}

func promptReview(req workspace.Request) (workspace.Request, error) {
	result, err := tea.NewProgram(reviewModel{req: req}).Run()
	if err != nil {
		return req, err
	}
	rm := result.(reviewModel)
	if rm.aborted {
		return req, errAborted
	}
	return rm.req, nil
}

// splitNames splits comma-separated input, dropping blanks.
func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// memberValidator rejects names that are already taken, including names
// repeated within the input itself.
func memberValidator(taken map[string]bool) func(string) error {
	return func(s string) error {
		seen := make(map[string]bool)
		for _, name := range splitNames(s) {
			if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
				return fmt.Errorf("invalid member name %q", name)
			}
			if taken[name] || seen[name] {
				return fmt.Errorf("member %q is already listed", name)
			}
			seen[name] = true
		}
		return nil
	}
}

// promptRequest asks for additional libraries and binaries, appending to
// whatever req already lists, then shows the result for confirmation.
func promptRequest(req workspace.Request) (workspace.Request, error) {
	taken := make(map[string]bool)
	for _, name := range req.Members() {
		taken[name] = true
	}

	for _, kind := range []workspace.MemberKind{workspace.Library, workspace.Binary} {
		names, err := promptMembers(kind, taken)
		if err != nil {
			return req, err
		}
		for _, name := range names {
			taken[name] = true
		}
		if kind == workspace.Binary {
			req.Bins = append(req.Bins, names...)
		} else {
			req.Libs = append(req.Libs, names...)
		}
	}
	return promptReview(req)
}
