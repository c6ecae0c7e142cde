package contract

import (
	"time"

	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/ordering"
	"github.com/alexanderramin/menus/internal/tree"
)

// MenuView is the wire form of a menu item.
type MenuView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       *string   `json:"url"`
	Icon      *string   `json:"icon"`
	ParentID  *string   `json:"parentId"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TreeView is a menu item with its nested children. Leaves carry an empty,
// non-null children array.
type TreeView struct {
	MenuView
	Children []*TreeView `json:"children"`
}

type DetailView struct {
	MenuView
	Parent   *MenuView  `json:"parent"`
	Children []MenuView `json:"children"`
}

type DeleteView struct {
	ID         string   `json:"id"`
	DeletedIDs []string `json:"deletedIds"`
}

type ViolationView struct {
	ParentID   *string `json:"parentId"`
	Size       int     `json:"size"`
	Missing    []int   `json:"missing"`
	Duplicates []int   `json:"duplicates"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewMenuView(m *domain.MenuItem) MenuView {
	return MenuView{
		ID:        m.ID,
		Name:      m.Name,
		URL:       m.URL,
		Icon:      m.Icon,
		ParentID:  m.ParentID,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewTreeViews mirrors the forest without recursion.
func NewTreeViews(roots []*tree.Node) []*TreeView {
	type pending struct {
		node *tree.Node
		into *[]*TreeView
	}

	out := make([]*TreeView, 0, len(roots))
	stack := make([]pending, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, pending{node: roots[i], into: &out})
	}
	// Children are pushed in reverse, so each slice fills in sibling order.
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := &TreeView{MenuView: NewMenuView(&p.node.Item), Children: make([]*TreeView, 0, len(p.node.Children))}
		*p.into = append(*p.into, v)
		for i := len(p.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{node: p.node.Children[i], into: &v.Children})
		}
	}
	return out
}

func NewDetailView(item, parent *domain.MenuItem, children []*domain.MenuItem) DetailView {
	v := DetailView{MenuView: NewMenuView(item), Children: make([]MenuView, len(children))}
	if parent != nil {
		p := NewMenuView(parent)
		v.Parent = &p
	}
	for i, c := range children {
		v.Children[i] = NewMenuView(c)
	}
	return v
}

func NewViolationView(parentID *string, size int, v ordering.Violation) ViolationView {
	return ViolationView{
		ParentID:   parentID,
		Size:       size,
		Missing:    v.Missing,
		Duplicates: v.Duplicates,
	}
}
