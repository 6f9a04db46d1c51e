package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Completer suggests a completion for the current input on Tab.
// PathCompleter implements it.
type Completer interface {
	Next(input string) string
	Reset()
}

// TextField is a labeled text input field with optional Tab completion.
type TextField struct {
	key       string
	label     string
	input     textinput.Model
	focused   bool
	required  bool
	validator func(string) error
	completer Completer
	err       error
	complete  key.Binding
	styles    textFieldStyles
}

type textFieldStyles struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Input        lipgloss.Style
	FocusedInput lipgloss.Style
	Error        lipgloss.Style
	Required     lipgloss.Style
}

func defaultTextFieldStyles() textFieldStyles {
	return textFieldStyles{
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Input:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusedInput: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Required:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NewTextField creates a text field. key identifies the field in Form.Values.
func NewTextField(key, label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 56

	return TextField{
		key:      key,
		label:    label,
		input:    ti,
		complete: completeBinding(),
		styles:   defaultTextFieldStyles(),
	}
}

func completeBinding() key.Binding {
	return key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete"))
}

// WithWidth sets the width of the input.
func (t TextField) WithWidth(width int) TextField {
	t.input.Width = width
	return t
}

// WithRequired marks the field as required.
func (t TextField) WithRequired(required bool) TextField {
	t.required = required
	return t
}

// WithValidator sets a validation function run on submit and on every change
// once the field has shown an error.
func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

// WithCompleter enables Tab completion.
func (t TextField) WithCompleter(c Completer) TextField {
	t.completer = c
	return t
}

// WithValue sets the initial value.
func (t TextField) WithValue(value string) TextField {
	t.input.SetValue(value)
	t.input.CursorEnd()
	return t
}

// Focus focuses the text field.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur removes focus from the text field.
func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
	if t.completer != nil {
		t.completer.Reset()
	}
}

// IsFocused returns true if the field is focused.
func (t TextField) IsFocused() bool {
	return t.focused
}

// Init implements tea.Model.
func (t TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && t.completer != nil {
		if key.Matches(km, t.complete) {
			t.input.SetValue(t.completer.Next(t.input.Value()))
			t.input.CursorEnd()
			return t, nil
		}
		t.completer.Reset()
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	if t.err != nil {
		t.err = t.check()
	}

	return t, cmd
}

// View implements tea.Model.
func (t TextField) View() string {
	var b strings.Builder

	labelStyle := t.styles.Label
	inputStyle := t.styles.Input
	if t.focused {
		labelStyle = t.styles.FocusedLabel
		inputStyle = t.styles.FocusedInput
	}

	labelText := t.label
	if t.required {
		labelText += t.styles.Required.Render(" *")
	}
	b.WriteString(labelStyle.Render(labelText))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(t.input.View()))

	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(t.styles.Error.Render(t.err.Error()))
	}

	return b.String()
}

// Key returns the field identifier.
func (t TextField) Key() string {
	return t.key
}

// Value returns the current value, trimmed.
func (t TextField) Value() string {
	return strings.TrimSpace(t.input.Value())
}

// SetValue sets the value.
func (t *TextField) SetValue(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

// Error returns the current validation error.
func (t TextField) Error() error {
	return t.err
}

// Validate runs validation, stores and returns any error.
func (t *TextField) Validate() error {
	t.err = t.check()
	return t.err
}

// SetError shows err under the field until the next successful validation.
func (t *TextField) SetError(err error) {
	t.err = err
}

func (t TextField) check() error {
	v := t.Value()
	if t.required && v == "" {
		return ErrFieldRequired
	}
	if t.validator != nil && v != "" {
		return t.validator(v)
	}
	return nil
}

// ErrFieldRequired is returned when a required field is empty.
var ErrFieldRequired = fieldError("this field is required")

type fieldError string

func (e fieldError) Error() string { return string(e) }
