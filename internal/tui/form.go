// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is one row of a form: a free text input, or a closed set of
// options switched with left/right when options is non-nil.
type field struct {
	label   string
	input   textinput.Model
	options []option
	choice  int
}

type option struct {
	label string
	value string
}

func textField(label, placeholder string, limit int) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return field{label: label, input: in}
}

func passwordField(label string) field {
	f := textField(label, "password", 256)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

func choiceField(label string, options []option) field {
	return field{label: label, options: options}
}

func (f field) value() string {
	if f.options != nil {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.choice].value
	}
	return f.input.Value()
}

func (f field) view(focused bool) string {
	if f.options == nil {
		return "[" + f.input.View() + "]"
	}
	if len(f.options) == 0 {
		return "-"
	}

	label := f.options[f.choice].label
	if focused {
		return "< " + label + " >"
	}
	return "  " + label
}

// fieldSet is the focus handling shared by every form screen.
type fieldSet struct {
	fields []field
	focus  int
}

func newFieldSet(fields ...field) fieldSet {
	fs := fieldSet{fields: fields}
	fs.setFocus(0)
	return fs
}

func (fs *fieldSet) setFocus(i int) {
	if len(fs.fields) == 0 {
		return
	}
	if fs.fields[fs.focus].options == nil {
		fs.fields[fs.focus].input.Blur()
	}
	fs.focus = (i + len(fs.fields)) % len(fs.fields)
	if fs.fields[fs.focus].options == nil {
		fs.fields[fs.focus].input.Focus()
	}
}

func (fs *fieldSet) next() { fs.setFocus(fs.focus + 1) }
func (fs *fieldSet) prev() { fs.setFocus(fs.focus - 1) }

func (fs *fieldSet) value(i int) string {
	return fs.fields[i].value()
}

// update forwards msg to the focused field. Choice fields take left/right.
func (fs *fieldSet) update(msg tea.Msg) tea.Cmd {
	f := &fs.fields[fs.focus]
	if f.options != nil {
		if k, ok := msg.(tea.KeyMsg); ok && len(f.options) > 0 {
			switch k.String() {
			case "left":
				f.choice = (f.choice - 1 + len(f.options)) % len(f.options)
			case "right", " ":
				f.choice = (f.choice + 1) % len(f.options)
			}
		}
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (fs *fieldSet) view() string {
	width := 0
	for _, f := range fs.fields {
		if len(f.label) > width {
			width = len(f.label)
		}
	}

	var b strings.Builder
	for i, f := range fs.fields {
		b.WriteString(f.label)
		b.WriteString(strings.Repeat(" ", width-len(f.label)))
		b.WriteString(" │ ")
		b.WriteString(f.view(i == fs.focus))
		b.WriteString("\n")
	}
	return b.String()
}
