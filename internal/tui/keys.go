// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	logout   key.Binding
	refresh  key.Binding
	newItem  key.Binding
	status   key.Binding
	priority key.Binding
	delete   key.Binding
	role     key.Binding
	copy     key.Binding
	filter   key.Binding
	prioFilt key.Binding
	clear    key.Binding
	register key.Binding
	version  key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	left:     key.NewBinding(key.WithKeys("left")),
	right:    key.NewBinding(key.WithKeys("right")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q")),
	logout:   key.NewBinding(key.WithKeys("L")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	newItem:  key.NewBinding(key.WithKeys("n")),
	status:   key.NewBinding(key.WithKeys("s")),
	priority: key.NewBinding(key.WithKeys("p")),
	delete:   key.NewBinding(key.WithKeys("d")),
	role:     key.NewBinding(key.WithKeys("t")),
	copy:     key.NewBinding(key.WithKeys("c")),
	filter:   key.NewBinding(key.WithKeys("f")),
	prioFilt: key.NewBinding(key.WithKeys("F")),
	clear:    key.NewBinding(key.WithKeys("x")),
	register: key.NewBinding(key.WithKeys("ctrl+r")),
	version:  key.NewBinding(key.WithKeys("f1")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}
