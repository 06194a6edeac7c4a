package mft

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// File represents a complete .mft source file.
type File struct {
	Blocks   []Block
	Position Position
}

func (f *File) node()         {}
func (f *File) Pos() Position { return f.Position }

// Block is a top-level declaration: *CSSBlock, *HTMLBlock, *ImportModule
// or *ImportVars.
type Block interface {
	Node
	block()
}

// CSSBlock holds style rules and the variables they may reference.
type CSSBlock struct {
	Params   []*CSSParam
	Rules    []*Rule
	Position Position
}

func (b *CSSBlock) node()         {}
func (b *CSSBlock) block()        {}
func (b *CSSBlock) Pos() Position { return b.Position }

// CSSParam declares a style variable. Default is the raw quoted literal,
// empty when absent.
type CSSParam struct {
	Name     string
	Default  string
	Position Position
}

// Selector is element.class1.class2:state. Element is empty for class-only
// selectors.
type Selector struct {
	Element string
	Classes []string
	State   string
}

// Rule is a comma-separated selector list followed by property lines.
type Rule struct {
	Selectors  []Selector
	Properties []Property
	Position   Position
}

// Property is a single name: value line in a rule.
type Property struct {
	Name  string
	Value string
}

// HTMLBlock is a named markup template compiled to a render function.
type HTMLBlock struct {
	Name     string
	Params   []*Param
	Events   []string
	Body     []Statement
	Position Position
}

func (b *HTMLBlock) node()         {}
func (b *HTMLBlock) block()        {}
func (b *HTMLBlock) Pos() Position { return b.Position }

// Param is a markup block parameter. Default is the raw quoted literal,
// empty when absent.
type Param struct {
	Name     string
	Default  string
	Position Position
}

// ImportModule is `import name from "source"`.
type ImportModule struct {
	Name     string
	Source   string
	Position Position
}

func (i *ImportModule) node()         {}
func (i *ImportModule) block()        {}
func (i *ImportModule) Pos() Position { return i.Position }

// ImportVars is `import {a, b as c} from "source"`.
type ImportVars struct {
	Names    []ImportName
	Source   string
	Position Position
}

func (i *ImportVars) node()         {}
func (i *ImportVars) block()        {}
func (i *ImportVars) Pos() Position { return i.Position }

// ImportName is one destructured import; Alias is empty when not renamed.
type ImportName struct {
	Name  string
	Alias string
}

// LocalName returns the name the import is bound to.
func (n ImportName) LocalName() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}
