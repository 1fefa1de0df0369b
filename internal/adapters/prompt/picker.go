package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

const (
	listHeight   = 16
	defaultWidth = 60
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
)

// IsTerminal reports whether both in and out are interactive terminals.
func IsTerminal(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}

// choiceItem adapts a domain.Choice to the bubbles list.
type choiceItem domain.Choice

func (i choiceItem) FilterValue() string { return i.Value }

type choiceDelegate struct{}

func (d choiceDelegate) Height() int                             { return 1 }
func (d choiceDelegate) Spacing() int                            { return 0 }
func (d choiceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(choiceItem)
	if !ok {
		return
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	_, _ = fmt.Fprint(w, fn(i.Name))
}

type pickerModel struct {
	list    list.Model
	choice  string
	done    bool
	aborted bool
}

func newPickerModel(title string, choices []domain.Choice, defaultValue string) pickerModel {
	items := make([]list.Item, 0, len(choices))
	selected := 0
	for i, c := range choices {
		items = append(items, choiceItem(c))
		if c.Value == defaultValue {
			selected = i
		}
	}

	height := listHeight
	if n := len(items) + 6; n < height {
		height = n
	}

	l := list.New(items, choiceDelegate{}, defaultWidth, height)
	l.Title = strings.TrimRight(title, "\n")
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	l.Select(selected)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(choiceItem); ok {
				m.choice = i.Value
				m.done = true
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return "\n" + m.list.View()
}

// TeaPicker implements ListPicker with a bubbletea list.
type TeaPicker struct {
	in  io.Reader
	out io.Writer
}

// NewTeaPicker creates a new TeaPicker reading keys from in and drawing to out.
func NewTeaPicker(in io.Reader, out io.Writer) *TeaPicker {
	return &TeaPicker{in: in, out: out}
}

// Pick runs the list until the user selects an entry or cancels.
func (p *TeaPicker) Pick(ctx context.Context, title string, choices []domain.Choice, defaultValue string) (string, error) {
	m := newPickerModel(title, choices, defaultValue)

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	finalModel, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", fmt.Errorf("%w: %w", domain.ErrPromptAborted, err)
		}
		return "", fmt.Errorf("failed to run picker: %w", err)
	}

	result, ok := finalModel.(pickerModel)
	if !ok || result.aborted || !result.done {
		return "", domain.ErrPromptAborted
	}

	_, _ = fmt.Fprintf(p.out, "? %s %s\n", m.list.Title, result.choice)
	return result.choice, nil
}
