package wizards

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/imgpick/internal/tui"
	"github.com/vvka-141/imgpick/internal/tui/components"
)

// Field keys of the input form.
const (
	FieldTable       = "table"
	FieldSource      = "source"
	FieldDestination = "destination"
	FieldColumn      = "column"
)

// TableExtensions are offered by Tab completion on the table field.
var TableExtensions = []string{".csv", ".tsv", ".txt", ".tab"}

// InputValues are the four inputs of a batch.
type InputValues struct {
	Table       string
	Source      string
	Destination string
	Column      string
}

// InputResult holds the outcome of the input wizard.
type InputResult struct {
	Values    InputValues
	Cancelled bool
}

// HeaderLoader returns the header row of the table at path. The wizard uses
// it to offer a column list when the column field is left blank.
type HeaderLoader func(path string) ([]string, error)

type inputStep int

const (
	inputStepForm inputStep = iota
	inputStepLoading
	inputStepColumn
	inputStepDone
)

type headersMsg struct {
	headers []string
	err     error
}

// InputWizard collects table, source, destination and column.
type InputWizard struct {
	step     inputStep
	form     components.Form
	selector components.Selector
	spinner  spinner.Model
	loader   HeaderLoader
	result   InputResult
	width    int
	height   int
}

// NewInputWizard creates the wizard with fields pre-filled from initial.
// loader may be nil, in which case the column must be typed.
func NewInputWizard(initial InputValues, loader HeaderLoader) InputWizard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(tui.ColorPrimary)

	columnPlaceholder := "leave blank to pick from the header row"
	if loader == nil {
		columnPlaceholder = "e.g. image"
	}

	form := components.NewForm("imgpick - copy images listed in a table",
		components.NewTextField(FieldTable, "Table file (CSV/TSV)", "path/to/list.csv").
			WithRequired(true).
			WithValidator(validateFile).
			WithCompleter(components.NewPathCompleter(false).WithExtensions(TableExtensions...)).
			WithValue(initial.Table),
		components.NewTextField(FieldSource, "Source folder", "folder holding the images").
			WithRequired(true).
			WithValidator(validateDir).
			WithCompleter(components.NewPathCompleter(true)).
			WithValue(initial.Source),
		components.NewTextField(FieldDestination, "Destination folder", "folder receiving the copies").
			WithRequired(true).
			WithValidator(validateDir).
			WithCompleter(components.NewPathCompleter(true)).
			WithValue(initial.Destination),
		components.NewTextField(FieldColumn, "Column name", columnPlaceholder).
			WithRequired(loader == nil).
			WithValue(initial.Column),
	)

	return InputWizard{
		step:    inputStepForm,
		form:    form,
		spinner: s,
		loader:  loader,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (w InputWizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model.
func (w InputWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}
		switch w.step {
		case inputStepForm:
			return w.updateForm(msg)
		case inputStepColumn:
			return w.updateColumn(msg)
		}
		return w, nil

	case headersMsg:
		return w.handleHeaders(msg)

	case spinner.TickMsg:
		if w.step == inputStepLoading {
			var cmd tea.Cmd
			w.spinner, cmd = w.spinner.Update(msg)
			return w, cmd
		}
		return w, nil
	}

	// Cursor blink and other messages go to the form.
	if w.step == inputStepForm {
		var cmd tea.Cmd
		w.form, cmd = w.form.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w InputWizard) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	w.form, cmd = w.form.Update(msg)

	switch {
	case w.form.Cancelled():
		w.result.Cancelled = true
		return w, tea.Quit
	case w.form.Submitted():
		w.result.Values = w.formValues()
		if w.result.Values.Column != "" || w.loader == nil {
			w.step = inputStepDone
			return w, tea.Quit
		}
		w.step = inputStepLoading
		return w, tea.Batch(w.spinner.Tick, loadHeaders(w.loader, w.result.Values.Table))
	}
	return w, cmd
}

func (w InputWizard) updateColumn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w.selector, _ = w.selector.Update(msg)

	switch {
	case w.selector.Submitted():
		w.result.Values.Column = w.selector.Value()
		w.step = inputStepDone
		return w, tea.Quit
	case w.selector.Cancelled():
		w.step = inputStepForm
		return w, w.form.Reopen(FieldColumn)
	}
	return w, nil
}

func (w InputWizard) handleHeaders(msg headersMsg) (tea.Model, tea.Cmd) {
	if w.step != inputStepLoading {
		return w, nil
	}

	err := msg.err
	if err == nil && len(msg.headers) == 0 {
		err = errors.New("the table has no header row")
	}
	if err != nil {
		w.step = inputStepForm
		cmd := w.form.Reopen(FieldTable)
		w.form.Field(FieldTable).SetError(err)
		return w, cmd
	}

	options := make([]components.Option, 0, len(msg.headers))
	for i, h := range msg.headers {
		label := h
		if strings.TrimSpace(h) == "" {
			label = "(blank)"
		}
		options = append(options, components.Option{
			Label:       label,
			Description: fmt.Sprintf("column %d", i+1),
			Value:       h,
		})
	}
	w.selector = components.NewSelector("Which column holds the image filenames?", options).
		WithHeight(w.height - 8)
	w.step = inputStepColumn
	return w, nil
}

func loadHeaders(loader HeaderLoader, path string) tea.Cmd {
	return func() tea.Msg {
		headers, err := loader(path)
		return headersMsg{headers: headers, err: err}
	}
}

func (w InputWizard) formValues() InputValues {
	v := w.form.Values()
	return InputValues{
		Table:       v[FieldTable],
		Source:      v[FieldSource],
		Destination: v[FieldDestination],
		Column:      v[FieldColumn],
	}
}

// View implements tea.Model.
func (w InputWizard) View() string {
	switch w.step {
	case inputStepLoading:
		return fmt.Sprintf("\n %s Reading header row of %s\n", w.spinner.View(), w.result.Values.Table)
	case inputStepColumn:
		return w.selector.View()
	case inputStepDone:
		return ""
	}
	return w.form.View()
}

// Result returns the wizard result.
func (w InputWizard) Result() InputResult {
	return w.result
}

// RunInputWizard runs the wizard on the terminal.
func RunInputWizard(initial InputValues, loader HeaderLoader) (InputResult, error) {
	p := tea.NewProgram(NewInputWizard(initial, loader), tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return InputResult{Cancelled: true}, err
	}
	return model.(InputWizard).Result(), nil
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.New("file not found")
	}
	if info.IsDir() {
		return errors.New("this is a folder, not a file")
	}
	return nil
}

func validateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.New("folder not found")
	}
	if !info.IsDir() {
		return errors.New("this is a file, not a folder")
	}
	return nil
}
