// Package fakedom provides a deterministic in-memory Document for tests and
// headless tours. It supports the selector subset the ShiftSync catalog
// actually uses: tag names, #id, .class, [attr] and [attr="value"] filters,
// compound simple selectors, and comma-separated lists.
package fakedom

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Node is one fake element. Fields are plain data so tests can lay out a
// page literally.
type Node struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string
	Text    string
	Box     domain.Rect
	Hidden  bool
}

// Document implements ports.Document over a flat, ordered node list.
type Document struct {
	mu       sync.Mutex
	nodes    []*Node
	viewport domain.Viewport
	scrolled []*Node
}

// New creates a Document with a standard desktop viewport and an implicit
// body node.
func New(nodes ...*Node) *Document {
	d := &Document{
		viewport: domain.Viewport{Width: 1280, Height: 800},
	}
	d.nodes = append(d.nodes, &Node{Tag: "body", Box: domain.Rect{Width: 1280, Height: 800}})
	d.nodes = append(d.nodes, nodes...)
	return d
}

// Add appends nodes in document order.
func (d *Document) Add(nodes ...*Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nodes = append(d.nodes, nodes...)
}

// SetViewport overrides the viewport, e.g. to simulate a mobile device.
func (d *Document) SetViewport(v domain.Viewport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = v
}

// Scrolled returns the nodes ScrollIntoView was called on, in order.
func (d *Document) Scrolled() []*Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Node(nil), d.scrolled...)
}

// Nodes returns the live node list. Intended for test assertions.
func (d *Document) Nodes() []*Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Node(nil), d.nodes...)
}

// Query returns the elements matching a CSS selector, in document order.
func (d *Document) Query(ctx context.Context, selector string) ([]ports.Element, error) {
	matchers, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var out []ports.Element
	for _, n := range d.nodes {
		for _, m := range matchers {
			if m.matches(n) {
				out = append(out, &Element{doc: d, node: n})
				break
			}
		}
	}
	return out, nil
}

// Viewport returns the configured viewport.
func (d *Document) Viewport(ctx context.Context) (domain.Viewport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport, nil
}

// ScrollIntoView records the scroll request.
func (d *Document) ScrollIntoView(ctx context.Context, el ports.Element) error {
	fe, ok := el.(*Element)
	if !ok {
		return fmt.Errorf("foreign element %T", el)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrolled = append(d.scrolled, fe.node)
	return nil
}

func (d *Document) remove(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, cand := range d.nodes {
		if cand == n {
			d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
			return
		}
	}
}

// Element implements ports.Element over a *Node.
type Element struct {
	doc  *Document
	node *Node
}

// Node exposes the backing node for test assertions.
func (e *Element) Node() *Node { return e.node }

func (e *Element) Rect(ctx context.Context) (domain.Rect, error) {
	return e.node.Box, nil
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	return !e.node.Hidden && !e.node.Box.Empty(), nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.node.Text, nil
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	return e.node.Attrs[name], nil
}

func (e *Element) SetAttribute(ctx context.Context, name, value string) error {
	if e.node.Attrs == nil {
		e.node.Attrs = map[string]string{}
	}
	e.node.Attrs[name] = value
	return nil
}

func (e *Element) RemoveAttribute(ctx context.Context, name string) error {
	delete(e.node.Attrs, name)
	return nil
}

func (e *Element) Raise(ctx context.Context) (func(context.Context) error, error) {
	if err := e.SetAttribute(ctx, "data-tour-raised", "true"); err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return e.RemoveAttribute(ctx, "data-tour-raised")
	}, nil
}

func (e *Element) Clone(ctx context.Context) (ports.Element, error) {
	attrs := map[string]string{}
	for k, v := range e.node.Attrs {
		attrs[k] = v
	}
	clone := &Node{
		Tag:     e.node.Tag,
		Classes: append([]string(nil), e.node.Classes...),
		Attrs:   attrs,
		Text:    e.node.Text,
		Box:     e.node.Box,
	}
	e.doc.Add(clone)
	return &Element{doc: e.doc, node: clone}, nil
}

func (e *Element) Remove(ctx context.Context) error {
	e.doc.remove(e.node)
	return nil
}

// matcher is one compound simple selector (tag#id.class[attr="v"]).
type matcher struct {
	tag     string
	id      string
	classes []string
	attrs   map[string]*string // nil value = presence check
}

func (m matcher) matches(n *Node) bool {
	if m.tag != "" && m.tag != "*" && !strings.EqualFold(m.tag, n.Tag) {
		return false
	}
	if m.id != "" && m.id != n.ID {
		return false
	}
	for _, c := range m.classes {
		if !containsClass(n.Classes, c) {
			return false
		}
	}
	for name, want := range m.attrs {
		got, ok := n.Attrs[name]
		if !ok {
			return false
		}
		if want != nil && got != *want {
			return false
		}
	}
	return true
}

func containsClass(classes []string, c string) bool {
	for _, cand := range classes {
		if cand == c {
			return true
		}
	}
	return false
}

// parseSelector supports a deliberate subset. Pseudo-selectors and
// combinators are unsupported and return an error, mirroring how a runtime
// rejects syntax it does not know.
func parseSelector(selector string) ([]matcher, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("empty selector")
	}

	var matchers []matcher
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if strings.ContainsAny(part, ":>+~ ") {
			return nil, fmt.Errorf("unsupported selector syntax: %q", part)
		}
		m, err := parseCompound(part)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

func parseCompound(s string) (matcher, error) {
	m := matcher{attrs: map[string]*string{}}
	for len(s) > 0 {
		switch s[0] {
		case '#':
			token, rest := readToken(s[1:])
			if token == "" {
				return m, fmt.Errorf("bad id selector")
			}
			m.id, s = token, rest
		case '.':
			token, rest := readToken(s[1:])
			if token == "" {
				return m, fmt.Errorf("bad class selector")
			}
			m.classes, s = append(m.classes, token), rest
		case '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return m, fmt.Errorf("unterminated attribute selector")
			}
			body := s[1:end]
			s = s[end+1:]
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				name := body[:eq]
				val := strings.Trim(body[eq+1:], `"'`)
				m.attrs[name] = &val
			} else {
				m.attrs[body] = nil
			}
		default:
			token, rest := readToken(s)
			if token == "" {
				return m, fmt.Errorf("bad selector: %q", s)
			}
			m.tag, s = token, rest
		}
	}
	return m, nil
}

func readToken(s string) (token, rest string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '#', '.', '[':
			return s[:i], s[i:]
		}
	}
	return s, ""
}
