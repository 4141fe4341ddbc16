package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/h3-runtime/dispatch"
	"github.com/wippyai/h3-runtime/value"
)

type interactiveModel struct {
	err      error
	tbl      *dispatch.Table
	result   string
	ops      []*dispatch.Descriptor
	inputs   []textinput.Model
	selected int
	offset   int
	focusIdx int
	height   int
	state    modelState
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(tbl *dispatch.Table) *interactiveModel {
	return &interactiveModel{
		tbl:    tbl,
		ops:    tbl.Descriptors(),
		height: 20,
		state:  stateSelectOp,
	}
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 6; h > 0 {
			m.height = h
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
				if m.selected < m.offset {
					m.offset = m.selected
				}
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(m.ops)-1 {
				m.selected++
				if m.selected >= m.offset+m.height {
					m.offset = m.selected - m.height + 1
				}
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callOperation
				}
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.callOperation

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	d := m.ops[m.selected]
	m.inputs = make([]textinput.Model, len(d.Params))
	for i, p := range d.Params {
		ti := textinput.New()
		ti.Placeholder = dispatch.TypeString(p.Type)
		ti.Prompt = p.Name + ": "
		ti.Width = 60
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callOperation() tea.Msg {
	d := m.ops[m.selected]
	args := make([]value.Value, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = convertArg(input.Value(), d.Params[i])
	}

	result, err := m.tbl.Call(d.Name, args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	out, err := formatValue(result, "json")
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: out}
}

// convertArg reads an input as JSON. String parameters may be typed bare.
func convertArg(raw string, p dispatch.Param) value.Value {
	raw = strings.TrimSpace(raw)
	v, err := value.Parse([]byte(raw))
	if err != nil {
		if p.Kind() == value.KindString {
			return value.String(raw)
		}
		return value.Null()
	}
	return v
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("H3"))
	b.WriteString(fmt.Sprintf(" %d operations", len(m.ops)))
	b.WriteString("\n\n")

	p := &printer{styled: true}

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation to call:\n\n")
		end := min(m.offset+m.height, len(m.ops))
		for i := m.offset; i < end; i++ {
			d := m.ops[i]
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + dispatch.Signature(d)))
			} else {
				b.WriteString("  " + p.signature(d))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		d := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n", funcStyle.Render(d.Name)))
		if d.Doc != "" {
			b.WriteString(helpStyle.Render(d.Doc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(dispatch.TypeString(d.Params[i].Type)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		d := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(d.Name)))
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		case m.result == "false" && d.Fallible:
			b.WriteString(falseStyle.Render(m.result))
		default:
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(tbl *dispatch.Table) error {
	p := tea.NewProgram(newInteractiveModel(tbl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
