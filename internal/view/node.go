// Package view builds the quiz modal as an HTML node tree and renders it.
//
// All learner- and AI-supplied strings enter the tree as text nodes or
// attribute values. Render is the only path from nodes to bytes, and it
// escapes & < > " ' on the way out, so no caller ever concatenates markup.
package view

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single attribute on an element.
type Attr = html.Attribute

// A builds an attribute.
func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// El builds an element with the given attributes and children.
// nil children are skipped.
func El(tag atom.Atom, attrs []Attr, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Text builds a text node. Its content is escaped at render time.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Class is shorthand for a class attribute list.
func Class(class string, more ...Attr) []Attr {
	return append([]Attr{A("class", class)}, more...)
}

// Hidden adds the hidden class when hide is true.
func Hidden(class string, hide bool) string {
	if !hide {
		return class
	}
	if class == "" {
		return "hidden"
	}
	return class + " hidden"
}

// Render writes n and its subtree to w.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString renders n to a string.
func RenderString(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Escape returns s with HTML special characters replaced by entities,
// exactly as Render does for text nodes.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return html.UnescapeString(s)
}
