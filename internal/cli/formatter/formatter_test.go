package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/ordering"
	"github.com/alexanderramin/menus/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func menu(id, name string, parent *string, order int) *domain.MenuItem {
	return &domain.MenuItem{ID: id, Name: name, ParentID: parent, SortOrder: order, IsActive: true}
}

func sampleForest() []*tree.Node {
	home, about, team := "home", "about", "team"
	hidden := menu("contact", "Contact", &home, 1)
	hidden.IsActive = false
	return tree.Build([]*domain.MenuItem{
		menu(home, "Home", nil, 0),
		menu(about, "About", &home, 0),
		hidden,
		menu(team, "Team", &about, 0),
		menu("settings", "Settings", nil, 1),
	})
}

func TestMenuTreeItems_Connectors(t *testing.T) {
	items := MenuTreeItems(sampleForest())
	require.Len(t, items, 5)

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Title
	}
	assert.Equal(t, []string{"Home", "About", "Team", "Contact", "Settings"}, names)

	assert.Equal(t, 0, items[0].Level)
	assert.Equal(t, 1, items[1].Level)
	assert.False(t, items[1].IsLast)
	assert.Equal(t, 2, items[2].Level)
	assert.Equal(t, []bool{true}, items[2].Rails, "About has a later sibling")
	assert.True(t, items[3].IsLast)
	assert.True(t, items[3].Inactive)
}

func TestRenderTree(t *testing.T) {
	out := stripANSI(RenderTree(MenuTreeItems(sampleForest())))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "Home"))
	assert.True(t, strings.HasPrefix(lines[1], "├─ About"))
	assert.True(t, strings.HasPrefix(lines[2], "│  └─ Team"))
	assert.True(t, strings.HasPrefix(lines[3], "└─ Contact (hidden)"))
	assert.True(t, strings.HasPrefix(lines[4], "Settings"))
	assert.Contains(t, lines[1], "[ #0 ]")
	assert.Contains(t, lines[3], "[ #1 ]")

	assert.Empty(t, RenderTree(nil))
}

func TestFormatMenuTree(t *testing.T) {
	out := stripANSI(FormatMenuTree(sampleForest()))
	assert.Contains(t, out, "MENUS")
	assert.Contains(t, out, "5 items")

	assert.Contains(t, stripANSI(FormatMenuTree(nil)), "No menu items yet")
}

func TestRenderTable(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"xyz", "1"}, {"q"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"A", "LONGER"}, strings.Fields(lines[0]))
	assert.Empty(t, strings.Trim(lines[1], "─ "), "header rule")
	assert.Equal(t, []string{"xyz", "1"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"q"}, strings.Fields(lines[3]))
	assert.Equal(t, strings.Index(lines[0], "LONGER"), strings.Index(lines[2], "1"), "columns align")

	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatMenuDetail(t *testing.T) {
	parentID := "parent-0001"
	url := "/docs"
	item := menu("item-00000001", "Docs", &parentID, 2)
	item.URL = &url
	item.UpdatedAt = time.Now()
	parent := menu(parentID, "Parent", nil, 0)
	child := menu("child-0001", "Intro", &item.ID, 0)

	out := stripANSI(FormatMenuDetail(item, parent, []*domain.MenuItem{child}))
	assert.Contains(t, out, "DOCS")
	assert.Contains(t, out, "/docs")
	assert.Contains(t, out, "Parent parent-0")
	assert.Contains(t, out, "POSITION  2")
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "Just now")
}

func TestFormatViolations(t *testing.T) {
	assert.Contains(t, stripANSI(FormatViolations(nil)), "densely ordered")

	pid := "p1"
	out := stripANSI(FormatViolations([]ScopeRow{
		{ParentID: nil, Size: 2, Violation: ordering.Violation{Missing: []int{1}}},
		{ParentID: &pid, Size: 3, Violation: ordering.Violation{Missing: []int{2}, Duplicates: []int{0}}},
	}))
	assert.Contains(t, out, "2 scope(s) out of order")
	assert.Contains(t, out, "(root)")
	assert.Contains(t, out, "p1")
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", AgeAt(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", AgeAt(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", AgeAt(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Feb 1, 2026", AgeAt(now.AddDate(0, -1, 0), now))
}

func TestFormatMenuItemAndDeleted(t *testing.T) {
	out := stripANSI(FormatMenuItem("Created", menu("abcdef123456", "Home", nil, 0)))
	assert.Equal(t, "Created Home abcdef12 at position 0 (root)\n", out)

	out = stripANSI(FormatDeleted([]string{"aaaaaaaaaa", "bbbbbbbbbb"}))
	assert.Contains(t, out, "Deleted 2 item(s)")
	assert.Contains(t, out, "aaaaaaaa")
}
