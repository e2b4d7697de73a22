package assistant

import (
	"regexp"
	"strings"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

var (
	// actionItemRe matches "Person: Task" lines, with an optional leading
	// bullet and either ':' or '-' as the separator
	actionItemRe = regexp.MustCompile(`^[-•*]?\s*([^:]+?)\s*[:|-]\s*(.+)$`)

	// dueDateRe captures a trailing parenthesized due date
	dueDateRe = regexp.MustCompile(`^(.*)\(([^)]+)\)\s*$`)
)

// minTaskLineLength filters out stray fragments when a line has no
// recognizable assignee
const minTaskLineLength = 10

// ParseActionItems turns a block of generated action-item lines into
// structured items. Lines shaped like "Person: Task (Due date)" get their
// parts split out; anything else long enough to be a task is kept with an
// Unassigned owner. Unparseable noise is dropped.
func ParseActionItems(text string) []entities.ActionItem {
	items := make([]entities.ActionItem, 0)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := actionItemRe.FindStringSubmatch(line)
		if m == nil {
			if len(line) > minTaskLineLength {
				items = append(items, entities.ActionItem{
					Assignee: "Unassigned",
					Task:     line,
				})
			}
			continue
		}

		assignee := strings.TrimSpace(m[1])
		task := strings.TrimSpace(m[2])

		item := entities.ActionItem{Assignee: assignee, Task: task}
		if d := dueDateRe.FindStringSubmatch(task); d != nil {
			item.Task = strings.TrimSpace(d[1])
			due := strings.TrimSpace(d[2])
			item.DueDate = &due
		}

		items = append(items, item)
	}

	return items
}
