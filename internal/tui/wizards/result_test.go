package wizards

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/imgpick/pkg/imgpick"
)

func TestShouldShowResult(t *testing.T) {
	if ShouldShowResult(imgpick.Result{Copied: 3, NotFound: []string{}}) {
		t.Error("nothing to list, viewer should not be shown")
	}
	if !ShouldShowResult(imgpick.Result{NotFound: []string{"a.jpg"}}) {
		t.Error("viewer should be shown when files are missing")
	}
}

func TestResultView_ListsSortedNames(t *testing.T) {
	v := NewResultView(imgpick.Result{Copied: 2, Total: 4, NotFound: []string{"z.jpg", "a.jpg"}})

	got := v.NotFound()
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "z.jpg" {
		t.Errorf("NotFound() = %v", got)
	}

	view := v.View()
	for _, want := range []string{"Copied 2 images.", "Not found: 2", "a.jpg", "z.jpg"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestResultView_DryRunTitle(t *testing.T) {
	v := NewResultView(imgpick.Result{DryRun: true, NotFound: []string{"a.jpg"}})
	if !strings.Contains(v.View(), "dry run") {
		t.Errorf("dry run not indicated:\n%s", v.View())
	}
}

func TestResultView_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "esc", "enter"} {
		t.Run(k, func(t *testing.T) {
			v := NewResultView(imgpick.Result{NotFound: []string{"a.jpg"}})
			_, cmd := update(t, v, keyMsg(k))
			if !isQuit(cmd) {
				t.Errorf("%s should close the viewer", k)
			}
		})
	}
}

func TestResultView_ScrollsLongList(t *testing.T) {
	names := make([]string, 50)
	for i := range names {
		names[i] = strings.Repeat("x", 3) + string(rune('A'+i%26)) + ".jpg"
	}
	var m tea.Model = NewResultView(imgpick.Result{NotFound: names})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	before := m.View()
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	if m.View() == before {
		t.Error("down should scroll the list")
	}
	_, cmd := update(t, m, keyMsg("down"))
	if isQuit(cmd) {
		t.Error("scrolling must not quit")
	}
}
