package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/ordering"
	"github.com/alexanderramin/menus/internal/tree"
)

// FormatMenuTree renders the whole menu forest.
func FormatMenuTree(roots []*tree.Node) string {
	if len(roots) == 0 {
		return Muted("No menu items yet. Add one with `menus create --name NAME`.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Title("Menus") + "\n")
	b.WriteString(RenderTree(MenuTreeItems(roots)))
	b.WriteString(Muted(fmt.Sprintf("%d items", tree.Count(roots))) + "\n")
	return b.String()
}

// FormatMenuDetail renders one item with its parent and ordered children.
func FormatMenuDetail(item, parent *domain.MenuItem, children []*domain.MenuItem) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", Muted(fmt.Sprintf("%-8s", label)), value))
	}

	row("ID", item.ID)
	if parent != nil {
		row("PARENT", parent.Name+" "+ShortID(parent.ID))
	} else {
		row("PARENT", Muted("(root)"))
	}
	row("POSITION", strconv.Itoa(item.SortOrder))
	row("URL", optional(item.URL))
	row("ICON", optional(item.Icon))
	row("STATUS", Visibility(item.IsActive))
	row("UPDATED", Age(item.UpdatedAt))

	if len(children) > 0 {
		b.WriteString("\n")
		rows := make([][]string, len(children))
		for i, c := range children {
			rows[i] = []string{strconv.Itoa(c.SortOrder), c.Name, ShortID(c.ID), Visibility(c.IsActive)}
		}
		b.WriteString(RenderTable([]string{"#", "CHILD", "ID", "STATUS"}, rows))
	}
	return RenderCard(item.Name, strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatMenuItem is the one-line confirmation printed after a mutation.
func FormatMenuItem(verb string, item *domain.MenuItem) string {
	scope := "root"
	if item.ParentID != nil {
		scope = "under " + ShortID(*item.ParentID)
	}
	return fmt.Sprintf("%s %s %s at position %d (%s)\n",
		Success(verb), Strong(item.Name), ShortID(item.ID), item.SortOrder, scope)
}

// FormatDeleted lists removed ids in deletion order.
func FormatDeleted(ids []string) string {
	var b strings.Builder
	b.WriteString(Failure(fmt.Sprintf("Deleted %d item(s)", len(ids))) + "\n")
	for _, id := range ids {
		b.WriteString("  " + ShortID(id) + "\n")
	}
	return b.String()
}

// ScopeRow is one line of the density report.
type ScopeRow struct {
	ParentID  *string
	Size      int
	Violation ordering.Violation
}

// FormatViolations renders the density check report.
func FormatViolations(rows []ScopeRow) string {
	if len(rows) == 0 {
		return Success("✔ every scope is densely ordered") + "\n"
	}
	table := make([][]string, len(rows))
	for i, r := range rows {
		scope := "(root)"
		if r.ParentID != nil {
			scope = *r.ParentID
		}
		table[i] = []string{scope, strconv.Itoa(r.Size), ints(r.Violation.Missing), ints(r.Violation.Duplicates)}
	}
	return Failure(fmt.Sprintf("✖ %d scope(s) out of order", len(rows))) + "\n" +
		RenderTable([]string{"SCOPE", "SIZE", "MISSING", "DUPLICATED"}, table)
}

func ints(xs []int) string {
	if len(xs) == 0 {
		return Muted("--")
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
