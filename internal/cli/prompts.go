package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type PromptOpts struct {
	Title   string
	Buttons []PromptButton
	Inputs  []PromptInput
}

// Prompt asks for whichever of `opts.Inputs` have no value yet and
// returns ErrorPromptCancelled when the user backs out
func Prompt(opts PromptOpts) (*PromptModel, error) {
	model := CreatePrompt(opts)
	if len(model.inputs) == 0 {
		return model, nil
	}
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, fmt.Errorf("failed to get user input: %w", err)
	}
	if model.GetExitCode() == PromptCancelled {
		return nil, ErrorPromptCancelled
	}
	return model, nil
}

// DefaultPromptButtons are a submit button labelled `submitLabel` and a
// cancel button
func DefaultPromptButtons(submitLabel string) []PromptButton {
	return []PromptButton{
		{Label: submitLabel, Type: PromptButtonSubmit},
		{Label: "Cancel / Ctrl + C", Type: PromptButtonCancel},
	}
}

func CreatePrompt(opts PromptOpts) *PromptModel {
	m := PromptModel{
		buttons: opts.Buttons,
		outputs: map[string]string{},
		title:   opts.Title,
	}
	for _, input := range opts.Inputs {
		if answer, ok := input.answer(); ok {
			m.outputs[input.Id] = answer
			continue
		}
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.Width = 64
		input.Render(&t)
		m.inputIds = append(m.inputIds, input.Id)
		m.inputs = append(m.inputs, t)
	}
	if len(m.inputs) > 0 {
		m.focus(0)
	}
	return &m
}

type PromptExitCode int

const (
	PromptCompleted PromptExitCode = 0
	PromptCancelled PromptExitCode = 1
)

// PromptModel is a bubbletea model of a column of text inputs followed
// by a row of buttons, focus moves across both as one list
type PromptModel struct {
	buttons    []PromptButton
	focusIndex int
	inputIds   []string
	inputs     []textinput.Model
	isQuitting bool
	outputs    map[string]string
	title      string

	exitCode PromptExitCode
}

func (m PromptModel) GetExitCode() PromptExitCode {
	return m.exitCode
}

func (m PromptModel) GetValue(id string) string {
	return strings.TrimSpace(m.outputs[id])
}

// GetInt64Value parses the value of a PromptInteger input
func (m PromptModel) GetInt64Value(id string) (int64, error) {
	value, err := strconv.ParseInt(m.GetValue(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number", ErrorInvalidInput, id)
	}
	return value, nil
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		m.exitCode = PromptCompleted
		return m, tea.Quit
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInputs(msg)
	}
	isOnButtons := m.focusIndex >= len(m.inputs)
	switch key.String() {
	case "ctrl+c", "esc":
		m.exitCode = PromptCancelled
		m.isQuitting = true
		return m, tea.Quit
	case "enter":
		switch {
		case isOnButtons:
			m.buttons[m.focusIndex-len(m.inputs)].Handle(m)
		case m.focusIndex == len(m.inputs)-1:
			m.submit()
		default:
			return m, m.focus(m.focusIndex + 1)
		}
		m.isQuitting = true
		return m, tea.Quit
	case "tab", "down":
		return m, m.focus(m.focusIndex + 1)
	case "shift+tab", "up":
		return m, m.focus(m.focusIndex - 1)
	case "right":
		if isOnButtons {
			return m, m.focus(m.focusIndex + 1)
		}
	case "left":
		if isOnButtons {
			return m, m.focus(m.focusIndex - 1)
		}
	}
	return m, m.updateInputs(msg)
}

// focus moves the focus to `index`, wrapping around both ends
func (m *PromptModel) focus(index int) tea.Cmd {
	total := len(m.inputs) + len(m.buttons)
	m.focusIndex = (index%total + total) % total
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focusIndex {
			cmd = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}
	return cmd
}

func (m *PromptModel) submit() {
	for i, input := range m.inputs {
		m.outputs[m.inputIds[i]] = input.Value()
	}
	m.exitCode = PromptCompleted
}

func (m *PromptModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m PromptModel) View() string {
	if len(m.inputs) == 0 {
		return ""
	}
	var b strings.Builder
	if m.title != "" {
		fmt.Fprintf(&b, "%s\n\n", m.title)
	}
	views := make([]string, len(m.inputs))
	for i := range m.inputs {
		views[i] = m.inputs[i].View()
	}
	b.WriteString(strings.Join(views, "\n"))
	if !m.isQuitting && len(m.buttons) > 0 {
		b.WriteString("\n\n")
		for i := range m.buttons {
			fmt.Fprintf(&b, "%s\t", m.buttons[i].Render(m.focusIndex == len(m.inputs)+i))
		}
	}
	b.WriteString("\n\n")
	return b.String()
}

type PromptButtonType string

const (
	PromptButtonCancel PromptButtonType = "cancel"
	PromptButtonSubmit PromptButtonType = "submit"
)

type PromptButton struct {
	Label string
	Type  PromptButtonType
}

func (pb *PromptButton) Handle(m *PromptModel) {
	switch pb.Type {
	case PromptButtonCancel:
		m.exitCode = PromptCancelled
	case PromptButtonSubmit:
		m.submit()
	}
}

func (pb *PromptButton) Render(isSelected bool) string {
	if isSelected {
		return focusedStyle.Render(fmt.Sprintf("[ %s ]", pb.Label))
	}
	return fmt.Sprintf("[ %s ]", blurredStyle.Render(pb.Label))
}

type PromptInputType string

const (
	PromptInteger  PromptInputType = "integer"
	PromptString   PromptInputType = "string"
	PromptPassword PromptInputType = "password"
)

// PromptInput is one field of a prompt, a non-empty Value (a string,
// or an int64 for PromptInteger) skips asking for it
type PromptInput struct {
	Id          string
	Type        PromptInputType
	Placeholder string
	Value       any
}

func (pi *PromptInput) answer() (string, bool) {
	switch value := pi.Value.(type) {
	case string:
		return value, value != "" && pi.Type != PromptInteger
	case int64:
		return strconv.FormatInt(value, 10), value != 0 && pi.Type == PromptInteger
	}
	return "", false
}

func (pi *PromptInput) Render(t *textinput.Model) {
	t.Placeholder = pi.Placeholder
	t.CharLimit = 256
	switch pi.Type {
	case PromptInteger:
		t.CharLimit = 19
		t.Validate = func(value string) error {
			if value == "" {
				return nil
			}
			_, err := strconv.ParseInt(value, 10, 64)
			return err
		}
	case PromptPassword:
		t.EchoMode = textinput.EchoPassword
		t.EchoCharacter = '*'
	}
}
