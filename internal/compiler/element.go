package compiler

import (
	"fmt"
	"strings"

	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

var oldNode = js.Ident("old_node")

// element lowers an element to its vdom object:
//
//	{key, tag, store_x..., attrs, children, events}
//
// The body is lowered with the element's key, so keyed elements pass keys
// down to their children.
//
// Bindings in the body (let, store and multi-link streams) form a prelude.
// With a prelude the object is returned from `function(old_node) {...}`,
// which lets stores find the previous render's values.
func (c *compiler) element(e *mft.Element, key js.Expr) js.Expr {
	var props []js.Prop
	if key != nil {
		props = append(props, js.Prop{Key: "key", Value: key})
	}
	props = append(props, js.Prop{Key: "tag", Value: js.String(e.Name)})

	var prelude []js.Statement
	events := &eventMap{}

	for _, stmt := range e.Body {
		switch s := stmt.(type) {
		case *mft.LetBinding:
			prelude = append(prelude, &js.Var{Name: s.Name, Value: compileExpr(s.Value)})

		case *mft.StoreBinding:
			prop := "store_" + s.Name
			prelude = append(prelude, &js.Var{
				Name: s.Name,
				Value: &js.Or{
					Left:  &js.And{Left: oldNode, Right: js.Dot(oldNode, prop)},
					Right: compileExpr(s.Value),
				},
			})
			props = append(props, js.Prop{Key: prop, Value: js.Ident(s.Name)})
			store := js.Ident(s.Name)
			events.add("$destroyed", &js.Ternary{
				Cond: js.Dot(store, "owner_destroyed"),
				Then: js.Dot(store, "owner_destroyed", "handle_event"),
				Else: &js.FunctionExpr{},
			})

		case *mft.LinkStmt:
			for _, link := range s.Links {
				switch l := link.(type) {
				case *mft.SingleLink:
					events.add(l.Event, compileLink(compileExpr(l.Dest.Target), l.Filter, l.Dest.Value))
				case *mft.MultiLink:
					stream := fmt.Sprintf("_stream_%d", len(prelude))
					prelude = append(prelude, &js.Var{Name: stream, Value: compileExpr(l.Dest.Target)})
					for _, entry := range l.Entries {
						source := js.Dot(js.Ident(stream), entry.Attr)
						events.add(entry.Event(), compileLink(source, entry.Filter, l.Dest.Value))
					}
				}
			}
		}
	}

	if attrs := c.attrs(e); len(attrs.Props) > 0 {
		props = append(props, js.Prop{Key: "attrs", Value: attrs})
	}
	if hasRenderable(e.Body) {
		props = append(props, js.Prop{Key: "children", Value: c.fragment(e.Body, key)})
	}
	if events.len() > 0 {
		props = append(props, js.Prop{Key: "events", Value: events.object()})
	}

	obj := &js.Object{Props: props}
	if len(prelude) == 0 {
		return obj
	}
	return &js.FunctionExpr{
		Params: []js.Param{{Name: "old_node"}},
		Body:   append(prelude, &js.Return{X: obj}),
	}
}

func hasRenderable(body []mft.Statement) bool {
	for _, stmt := range body {
		if !mft.IsControl(stmt) {
			return true
		}
	}
	return false
}

// attrs builds the attribute object. Unconditional classes, led by the
// block name, join into one literal; conditional classes and a class
// attribute are appended with string addition, separated by spaces.
func (c *compiler) attrs(e *mft.Element) *js.Object {
	var literals []string
	var parts []js.Expr

	if c.settings.BlockName != "" && (len(e.Classes) > 0 || c.settings.BareElements[e.Name]) {
		literals = append(literals, c.settings.BlockName)
	}
	for _, cls := range e.Classes {
		if cls.Cond == nil {
			literals = append(literals, cls.Name)
			continue
		}
		parts = append(parts, &js.Ternary{
			Cond: compileExpr(cls.Cond),
			Then: js.String(cls.Name),
			Else: js.String(""),
		})
	}

	attrs := &js.Object{}
	for _, attr := range e.Attributes {
		if attr.Name == "class" {
			parts = append(parts, compileExpr(attr.Value))
			continue
		}
		attrs.Props = append(attrs.Props, js.Prop{Key: attr.Name, Value: compileExpr(attr.Value)})
	}

	if len(literals) > 0 {
		parts = append([]js.Expr{js.String(strings.Join(literals, " "))}, parts...)
	}
	if len(parts) > 0 {
		class := parts[0]
		for _, part := range parts[1:] {
			class = js.Concat(class, js.String(" "), part)
		}
		attrs.Props = append(attrs.Props, js.Prop{Key: "class", Value: class})
	}
	return attrs
}

// eventMap collects handlers per event name in first-seen order.
type eventMap struct {
	names    []string
	handlers map[string][]js.Expr
}

func (m *eventMap) add(name string, handler js.Expr) {
	if m.handlers == nil {
		m.handlers = make(map[string][]js.Expr)
	}
	if _, ok := m.handlers[name]; !ok {
		m.names = append(m.names, name)
	}
	m.handlers[name] = append(m.handlers[name], handler)
}

func (m *eventMap) len() int {
	return len(m.names)
}

// object maps each event to its handler, or to a list when several
// handlers share the event.
func (m *eventMap) object() *js.Object {
	obj := &js.Object{Props: make([]js.Prop, 0, len(m.names))}
	for _, name := range m.names {
		handlers := m.handlers[name]
		var value js.Expr = &js.List{Items: handlers}
		if len(handlers) == 1 {
			value = handlers[0]
		}
		obj.Props = append(obj.Props, js.Prop{Key: name, Value: value})
	}
	return obj
}

// compileLink builds `source.map(fn).filter(fn).handle_event`, where the
// map step exists only for value mappings and the filter step only when a
// filter is given. Both callbacks receive the event as ev.
func compileLink(source js.Expr, filter, value mft.Expr) js.Expr {
	stream := source
	if value != nil {
		stream = &js.Call{Func: js.Dot(stream, "map"), Args: []js.Expr{eventCallback(value)}}
	}
	if filter != nil {
		stream = &js.Call{Func: js.Dot(stream, "filter"), Args: []js.Expr{eventCallback(filter)}}
	}
	return js.Dot(stream, "handle_event")
}

func eventCallback(x mft.Expr) js.Expr {
	return &js.FunctionExpr{
		Params: []js.Param{{Name: "ev"}},
		Body:   []js.Statement{&js.Return{X: compileExpr(x)}},
	}
}
