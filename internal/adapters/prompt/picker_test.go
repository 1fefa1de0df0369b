package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

func pickerChoices() []domain.Choice {
	return []domain.Choice{
		{Name: "feat: A new feature", Value: "feat"},
		{Name: "fix:  A bug fix", Value: "fix"},
		{Name: "docs: Documentation only changes", Value: "docs"},
	}
}

func update(t *testing.T, m pickerModel, msg tea.Msg) pickerModel {
	t.Helper()
	next, _ := m.Update(msg)
	result, ok := next.(pickerModel)
	require.True(t, ok)
	return result
}

func TestPickerModel_SelectsDefault(t *testing.T) {
	m := newPickerModel("Select the type:\n", pickerChoices(), "fix")

	assert.Equal(t, 1, m.list.Index())
	assert.Equal(t, "Select the type:", m.list.Title)
}

func TestPickerModel_EnterPicksSelection(t *testing.T) {
	m := newPickerModel("Select", pickerChoices(), "")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.done)
	assert.False(t, m.aborted)
	assert.Equal(t, "fix", m.choice)
	assert.Empty(t, m.View())
}

func TestPickerModel_CtrlCAborts(t *testing.T) {
	m := newPickerModel("Select", pickerChoices(), "")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, m.aborted)
	assert.False(t, m.done)
	assert.Empty(t, m.choice)
}

func TestPickerModel_ViewListsChoices(t *testing.T) {
	m := newPickerModel("Select", pickerChoices(), "docs")

	view := m.View()

	assert.Contains(t, view, "A new feature")
	assert.Contains(t, view, "> docs: Documentation only changes")
}

func TestPickerModel_WindowResize(t *testing.T) {
	m := newPickerModel("Select", pickerChoices(), "")

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.list.Width())
}

func TestChoiceDelegate_Render(t *testing.T) {
	m := newPickerModel("Select", pickerChoices(), "")
	var buf bytes.Buffer

	choiceDelegate{}.Render(&buf, m.list, 0, choiceItem(pickerChoices()[0]))
	assert.True(t, strings.Contains(buf.String(), "> feat: A new feature"))

	buf.Reset()
	choiceDelegate{}.Render(&buf, m.list, 1, choiceItem(pickerChoices()[1]))
	assert.NotContains(t, buf.String(), ">")
	assert.Contains(t, buf.String(), "fix:  A bug fix")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(strings.NewReader(""), &bytes.Buffer{}))
}
