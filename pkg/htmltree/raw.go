package htmltree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Raw parses pre-sanitised markup into a tagless element. Callers are
// responsible for sanitising untrusted input first.
func Raw(markup string) (*Element, error) {
	out := Tagless()
	if strings.TrimSpace(markup) == "" {
		return out, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("htmltree: parse fragment: %w", err)
	}
	for _, node := range nodes {
		out.node.AppendChild(node)
	}
	return out, nil
}
