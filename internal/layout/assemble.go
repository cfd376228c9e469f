package layout

import (
	"strconv"

	"github.com/jmylchreest/toastui/internal/model"
)

// Default button labels used when an action has no label.
const (
	DefaultOKLabel     = "OK"
	DefaultCancelLabel = "Cancel"
)

// Input is everything Assemble needs to know about one toast.
type Input struct {
	Request model.NotificationRequest
	Config  model.NotificationConfig
	// HasIcon is true only when icon data was actually loaded.
	HasIcon bool
}

// Node is one element of an assembled toast.
type Node struct {
	Type       ElementType
	Attributes map[string]string
	// Text is the label for title, message, appname, ok and cancel nodes.
	Text string
	// Options and Selected are set on combobox nodes.
	Options  []string
	Selected string
	// Border is set on icon nodes.
	Border   model.Border
	Children []*Node
}

// Attr returns the attribute value or def when unset.
func (n *Node) Attr(name, def string) string {
	if v, ok := n.Attributes[name]; ok && v != "" {
		return v
	}
	return def
}

// IntAttr returns the attribute parsed as an int, or def.
func (n *Node) IntAttr(name string, def int) int {
	v, err := strconv.Atoi(n.Attr(name, ""))
	if err != nil {
		return def
	}
	return v
}

// Tree is the render-ready structure of one toast.
type Tree struct {
	// Width is the popup width requested by the template (0 = configured default).
	Width int
	Nodes []*Node
}

// Walk visits every node depth-first.
func (t *Tree) Walk(fn func(*Node)) {
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(t.Nodes)
}

// Find returns the first node of the given type, or nil.
func (t *Tree) Find(typ ElementType) *Node {
	var found *Node
	t.Walk(func(n *Node) {
		if found == nil && n.Type == typ {
			found = n
		}
	})
	return found
}

// Count returns the number of nodes of the given type.
func (t *Tree) Count(typ ElementType) int {
	count := 0
	t.Walk(func(n *Node) {
		if n.Type == typ {
			count++
		}
	})
	return count
}

// Labels returns the number of text labels (title, message, appname).
func (t *Tree) Labels() int {
	return t.Count(ElementTypeTitle) + t.Count(ElementTypeMessage) + t.Count(ElementTypeAppName)
}

// Assemble turns a layout and a finished request into a render tree. It is
// pure: leaves without data are dropped, and so are containers left empty.
func Assemble(cfg *LayoutConfig, in Input) *Tree {
	if cfg == nil {
		cfg = DefaultLayout()
	}
	return &Tree{
		Width: cfg.Width,
		Nodes: assembleAll(cfg.Elements, in),
	}
}

func assembleAll(elems []LayoutElement, in Input) []*Node {
	var nodes []*Node
	for _, e := range elems {
		nodes = append(nodes, assembleOne(e, in)...)
	}
	return nodes
}

func assembleOne(e LayoutElement, in Input) []*Node {
	req := in.Request
	n := &Node{Type: e.Type, Attributes: e.Attributes}

	switch e.Type {
	case ElementTypeIcon:
		if !in.HasIcon {
			return nil
		}
		n.Border = in.Config.IconBorder
	case ElementTypeTitle:
		if req.Title == "" {
			return nil
		}
		n.Text = req.Title
	case ElementTypeMessage:
		if req.Message == "" {
			return nil
		}
		n.Text = req.Message
	case ElementTypeAppName:
		if req.AppName == "" {
			return nil
		}
		n.Text = req.AppName
	case ElementTypeTextInput:
		if !req.TextInput {
			return nil
		}
	case ElementTypeComboBox:
		if !req.HasComboBox() {
			return nil
		}
		n.Options = append([]string(nil), req.ComboBox.Options...)
		n.Selected = req.ComboBox.Selected
		if n.Selected == "" {
			n.Selected = n.Options[0]
		}
	case ElementTypeOK:
		return actionNode(n, req.OK, DefaultOKLabel)
	case ElementTypeCancel:
		return actionNode(n, req.Cancel, DefaultCancelLabel)
	case ElementTypeActions:
		children := e.Children
		if len(children) == 0 {
			children = []LayoutElement{{Type: ElementTypeOK}, {Type: ElementTypeCancel}}
		}
		n.Children = assembleAll(children, in)
		if len(n.Children) == 0 {
			return nil
		}
	default:
		n.Children = assembleAll(e.Children, in)
		if len(n.Children) == 0 {
			return nil
		}
	}
	return []*Node{n}
}

func actionNode(n *Node, action *model.Action, def string) []*Node {
	if action == nil || action.Handler == nil {
		return nil
	}
	n.Text = action.Label
	if n.Text == "" {
		n.Text = def
	}
	return []*Node{n}
}
