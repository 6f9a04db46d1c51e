package wizards

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/imgpick/internal/report"
	"github.com/vvka-141/imgpick/internal/tui"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// chrome is the number of lines around the viewport: title, summary, help.
const chrome = 9

// ResultView shows the completion summary with a scrollable list of the
// filenames that were not found.
type ResultView struct {
	result   imgpick.Result
	names    []string
	viewport viewport.Model
	keys     tui.KeyMap
}

// ShouldShowResult reports whether the viewer has anything to list.
func ShouldShowResult(result imgpick.Result) bool {
	return len(result.NotFound) > 0
}

// NewResultView creates the viewer for result.
func NewResultView(result imgpick.Result) ResultView {
	names := append([]string(nil), result.NotFound...)
	sort.Strings(names)

	vp := viewport.New(60, 10)
	vp.SetContent(strings.Join(names, "\n"))

	return ResultView{
		result:   result,
		names:    names,
		viewport: vp,
		keys:     tui.DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (v ResultView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v ResultView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.viewport.Width = msg.Width - 4
		v.viewport.Height = msg.Height - chrome
		if v.viewport.Height < 3 {
			v.viewport.Height = 3
		}
		return v, nil

	case tea.KeyMsg:
		// Scrolling keys fall through to the viewport.
		if key.Matches(msg, v.keys.Quit) || key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Submit) {
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements tea.Model.
func (v ResultView) View() string {
	var b strings.Builder

	title := "imgpick - done"
	if v.result.DryRun {
		title = "imgpick - dry run"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n")

	summary := report.Summary(v.result)
	if len(v.result.Failed) > 0 {
		b.WriteString(tui.ErrorStyle.Render(summary))
	} else {
		b.WriteString(tui.SuccessStyle.Render(summary))
	}
	b.WriteString("\n\n")

	b.WriteString(tui.WarningStyle.Render(fmt.Sprintf("%s %d not found", tui.SymbolCross, len(v.names))))
	b.WriteString("\n")
	b.WriteString(tui.BoxStyle.Render(v.viewport.View()))
	b.WriteString("\n")

	position := fmt.Sprintf("%3.f%%", v.viewport.ScrollPercent()*100)
	b.WriteString(tui.HelpStyle.Render(v.keys.ViewerHelpText() + "  " + position))

	return b.String()
}

// NotFound returns the listed filenames in display order.
func (v ResultView) NotFound() []string {
	return v.names
}

// RunResultView shows the viewer until the user quits.
func RunResultView(result imgpick.Result) error {
	_, err := tea.NewProgram(NewResultView(result), tea.WithAltScreen()).Run()
	return err
}
