package mft

// BareElements returns the element names used by style selectors that
// carry no class, such as `p` or `a:hover`. Markup elements with these
// names receive the block class even when they have no classes of their
// own.
func BareElements(file *File) map[string]bool {
	bare := make(map[string]bool)
	for _, blk := range file.Blocks {
		css, ok := blk.(*CSSBlock)
		if !ok {
			continue
		}
		for _, rule := range css.Rules {
			for _, sel := range rule.Selectors {
				if sel.Element != "" && len(sel.Classes) == 0 {
					bare[sel.Element] = true
				}
			}
		}
	}
	return bare
}

// AddBlockScoping returns a copy of file in which every style selector has
// name as its first class. Selectors already starting with name are left
// alone, so scoping twice has no further effect. Markup and import blocks
// are shared with the input.
func AddBlockScoping(file *File, name string) *File {
	out := &File{Position: file.Position, Blocks: make([]Block, 0, len(file.Blocks))}
	for _, blk := range file.Blocks {
		css, ok := blk.(*CSSBlock)
		if !ok {
			out.Blocks = append(out.Blocks, blk)
			continue
		}
		scoped := &CSSBlock{
			Params:   css.Params,
			Rules:    make([]*Rule, 0, len(css.Rules)),
			Position: css.Position,
		}
		for _, rule := range css.Rules {
			scoped.Rules = append(scoped.Rules, scopeRule(rule, name))
		}
		out.Blocks = append(out.Blocks, scoped)
	}
	return out
}

func scopeRule(rule *Rule, name string) *Rule {
	out := &Rule{
		Selectors:  make([]Selector, 0, len(rule.Selectors)),
		Properties: rule.Properties,
		Position:   rule.Position,
	}
	for _, sel := range rule.Selectors {
		if len(sel.Classes) > 0 && sel.Classes[0] == name {
			out.Selectors = append(out.Selectors, sel)
			continue
		}
		classes := make([]string, 0, len(sel.Classes)+1)
		classes = append(classes, name)
		classes = append(classes, sel.Classes...)
		sel.Classes = classes
		out.Selectors = append(out.Selectors, sel)
	}
	return out
}
