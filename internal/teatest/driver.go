// Package teatest drives bubbletea models synchronously in tests.
//
// Messages go straight to Update and every returned Cmd is executed and fed
// back in until the model settles, so no tea.Program or goroutine-owned
// state is involved. Cmds that block (ticks, cursor blinks) are abandoned
// after a short timeout.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// cmdTimeout separates message factories, which return at once, from timer
// Cmds such as tea.Tick, which would block a test for their full interval.
const cmdTimeout = 10 * time.Millisecond

// Driver holds the current model and feeds it messages.
type Driver struct {
	T     testing.TB
	Model tea.Model

	// Quitting is set once a Cmd produced tea.QuitMsg.
	Quitting bool
	// Skipped counts Cmds abandoned because they did not return in time.
	Skipped int
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run its Init Cmd.
func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
// Nothing is delivered after the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a special key such as tea.KeyEnter or tea.KeyUp.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Press(tea.KeyDown) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := run(cmd)
	if !ok {
		d.Skipped++
		return
	}

	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
