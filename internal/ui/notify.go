package ui

import (
	"time"

	"github.com/rivo/tview"

	"popquiz-client/internal/game"
)

// Notifier renders transient messages in a single banner line and
// auto-dismisses them after a fixed delay.
type Notifier struct {
	root *Root
	view *tview.TextView
	ttl  time.Duration
	seq  int
}

func newNotifier(root *Root, ttl time.Duration) *Notifier {
	view := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	return &Notifier{root: root, view: view, ttl: ttl}
}

// Notify implements game.Notifier. Safe to call from any goroutine.
func (n *Notifier) Notify(level game.NoteLevel, message string) {
	color := "white"
	switch level {
	case game.NoteSuccess:
		color = "green"
	case game.NoteError:
		color = "red"
	}

	n.root.post(func() {
		n.seq++
		seq := n.seq
		n.view.SetText("[" + color + "]" + tview.Escape(message) + "[-]")
		time.AfterFunc(n.ttl, func() {
			n.root.post(func() {
				// a newer message owns the banner now
				if n.seq == seq {
					n.view.SetText("")
				}
			})
		})
	})
}

// Success is shorthand for a success-level notification.
func (n *Notifier) Success(message string) { n.Notify(game.NoteSuccess, message) }

// Error is shorthand for an error-level notification.
func (n *Notifier) Error(message string) { n.Notify(game.NoteError, message) }

// Info is shorthand for an info-level notification.
func (n *Notifier) Info(message string) { n.Notify(game.NoteInfo, message) }
