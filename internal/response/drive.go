package response

import tea "github.com/charmbracelet/bubbletea"

// Drive runs cmd to completion on the calling goroutine, feeding every
// resolved message back into c, until no work is left. It is the headless
// counterpart of a bubbletea program loop.
func Drive(c *Controller, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, c.Update(msg))
		}
	}
}
