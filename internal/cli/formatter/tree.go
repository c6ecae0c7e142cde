package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/menus/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single line in a tree display.
type TreeItem struct {
	Title string
	Level int
	// IsLast marks the final child of its parent.
	IsLast bool
	// Rails has one entry per ancestor level below the root; true draws a
	// vertical connector because that ancestor still has siblings below.
	Rails    []bool
	Inactive bool
	Detail   string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// MenuTreeItems flattens a menu forest into display lines, parents first.
func MenuTreeItems(roots []*tree.Node) []TreeItem {
	type frame struct {
		node   *tree.Node
		level  int
		isLast bool
		rails  []bool
	}

	var items []TreeItem
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i], isLast: i == len(roots)-1})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		item := f.node.Item
		detail := fmt.Sprintf("#%d", item.SortOrder)
		if item.URL != nil && *item.URL != "" {
			detail = *item.URL + "  " + detail
		}
		items = append(items, TreeItem{
			Title:    item.Name,
			Level:    f.level,
			IsLast:   f.isLast,
			Rails:    f.rails,
			Inactive: !item.IsActive,
			Detail:   detail,
		})

		var childRails []bool
		if f.level > 0 {
			childRails = make([]bool, len(f.rails)+1)
			copy(childRails, f.rails)
			childRails[len(f.rails)] = !f.isLast
		}
		kids := f.node.Children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i], level: f.level + 1, isLast: i == len(kids)-1, rails: childRails})
		}
	}
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Inactive items are dimmed and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 0; i < item.Level-1; i++ {
				if i < len(item.Rails) && item.Rails[i] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Inactive {
			title = Muted(title + " (hidden)")
		} else if item.Level == 0 {
			title = Strong(title)
		}

		content := Muted(prefix.String()) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = accentStyle.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}
	return b.String()
}
