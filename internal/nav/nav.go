// Package nav resolves section identifiers to on-page scroll targets.
package nav

// Section identifiers the page renders as anchors.
const (
	Home     = "home"
	About    = "about"
	Projects = "projects"
	Contact  = "contact"
)

// Anchor is an addressable point on the page.
type Anchor struct {
	ID    string
	Label string
}

// Action tells the page where to scroll and how.
type Action struct {
	Target   string `json:"target"`
	Behavior string `json:"behavior"`
}

// DefaultAnchors are the sections of the portfolio page, in menu order.
var DefaultAnchors = []Anchor{
	{ID: Home, Label: "Home"},
	{ID: About, Label: "About"},
	{ID: Projects, Label: "Projects"},
	{ID: Contact, Label: "Contact"},
}

type Navigator struct {
	order   []Anchor
	anchors map[string]Anchor
}

func New(anchors ...Anchor) *Navigator {
	n := &Navigator{anchors: make(map[string]Anchor, len(anchors))}
	for _, a := range anchors {
		if _, dup := n.anchors[a.ID]; dup || a.ID == "" {
			continue
		}
		n.anchors[a.ID] = a
		n.order = append(n.order, a)
	}
	return n
}

// ScrollTo returns the smooth-scroll action for id. A missing anchor is not
// an error; ok is false and the caller does nothing.
func (n *Navigator) ScrollTo(id string) (Action, bool) {
	a, ok := n.anchors[id]
	if !ok {
		return Action{}, false
	}
	return Action{Target: "#" + a.ID, Behavior: "smooth"}, true
}

// Items lists the anchors in the order they were registered.
func (n *Navigator) Items() []Anchor {
	out := make([]Anchor, len(n.order))
	copy(out, n.order)
	return out
}
