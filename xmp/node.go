package xmp

// Attr is an attribute with its qualified name, e.g. "exif:FNumber".
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is an element of the XMP tree. Names keep their namespace prefix as written in the packet.
type Node struct {
	Name     string  `json:"name"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
	Text     string  `json:"text,omitempty"`
}

// Attr returns the value of the attribute called name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child called name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns every descendant called name, in document order.
func (n *Node) Find(name string) []*Node {
	var found []*Node
	n.Walk(func(d *Node) bool {
		if d != n && d.Name == name {
			found = append(found, d)
		}
		return true
	})
	return found
}

// Walk visits n and its descendants depth first. Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Properties flattens the children of n into a map: attributes become string entries,
// leaf elements their text, other elements their own properties. Repeated names collect into a slice.
func (n *Node) Properties() map[string]any {
	props := make(map[string]any)
	for _, c := range n.Children {
		for _, a := range c.Attrs {
			props[a.Name] = a.Value
		}

		var value any
		if len(c.Children) == 0 {
			value = c.Text
		} else {
			value = c.Properties()
		}

		switch existing := props[c.Name].(type) {
		case nil:
			props[c.Name] = value
		case []any:
			props[c.Name] = append(existing, value)
		default:
			props[c.Name] = []any{existing, value}
		}
	}
	return props
}
