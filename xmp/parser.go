package xmp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parser turns the text of an XMP packet into a node tree.
type Parser interface {
	Parse(text string) (*Node, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(text string) (*Node, error)

func (f ParserFunc) Parse(text string) (*Node, error) {
	return f(text)
}

// StdParser builds the tree from encoding/xml raw tokens, so that prefixes are kept as written
// instead of being resolved to namespace URIs.
type StdParser struct{}

func (StdParser) Parse(text string) (*Node, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))

	var (
		root  *Node
		stack []*Node
	)
	for {
		token, err := decoder.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xmp: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: qualified(t.Name)}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing xmp: second root element <%s>", node.Name)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, fmt.Errorf("parsing xmp: unexpected end element </%s>", name)
			}
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("parsing xmp: element <%s> is not closed", stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, errors.New("parsing xmp: no root element")
	}

	return root, nil
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
