package events

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a Bubble Tea command that waits for the next value on
// ch and delivers it as a tea.Msg. It returns nil when ctx is cancelled or
// the channel closes; re-issue the command from Update after each message
// to keep listening.
func ListenCmd[T any](ctx context.Context, ch <-chan T) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-ch:
			if !ok {
				return nil
			}
			return v
		}
	}
}
