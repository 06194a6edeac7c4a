package mft

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// cssVarWord matches a whole identifier-like word inside a property value.
// Words glued to dots or other word characters, such as 1.5em or a.b, are
// never variable references.
var cssVarWord = regexp2.MustCompile(`(?<![\w.-])[A-Za-z_][\w-]*(?![\w.-])`, regexp2.None)

// GenerateCSS renders every style block of file as CSS text.
//
// Variables declared in a block header are substituted in that block's
// property values. An entry in vars overrides a declared default; entries
// for names a block does not declare are ignored.
func GenerateCSS(file *File, vars map[string]string) string {
	var sb strings.Builder
	for _, blk := range file.Blocks {
		css, ok := blk.(*CSSBlock)
		if !ok {
			continue
		}
		values := blockVars(css, vars)
		for _, rule := range css.Rules {
			writeRule(&sb, rule, values)
		}
	}
	return sb.String()
}

// blockVars resolves the variable values visible in a style block.
func blockVars(css *CSSBlock, overrides map[string]string) map[string]string {
	if len(css.Params) == 0 {
		return nil
	}
	values := make(map[string]string, len(css.Params))
	for _, param := range css.Params {
		if override, ok := overrides[param.Name]; ok {
			values[param.Name] = override
			continue
		}
		if param.Default == "" {
			continue
		}
		value, err := Unescape(param.Default)
		if err != nil {
			// the lexer only produces well-formed literals
			value = param.Default[1 : len(param.Default)-1]
		}
		values[param.Name] = value
	}
	return values
}

func writeRule(sb *strings.Builder, rule *Rule, values map[string]string) {
	for i, sel := range rule.Selectors {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(SelectorString(sel))
	}
	sb.WriteString(" {\n")
	for _, prop := range rule.Properties {
		sb.WriteString("    ")
		sb.WriteString(prop.Name)
		sb.WriteString(": ")
		sb.WriteString(substituteVars(prop.Value, values))
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n\n")
}

// SelectorString renders a selector as element.class1.class2:state.
func SelectorString(sel Selector) string {
	var sb strings.Builder
	sb.WriteString(sel.Element)
	for _, cls := range sel.Classes {
		sb.WriteByte('.')
		sb.WriteString(cls)
	}
	if sel.State != "" {
		sb.WriteByte(':')
		sb.WriteString(sel.State)
	}
	return sb.String()
}

// substituteVars replaces variable names in a property value.
func substituteVars(value string, values map[string]string) string {
	if len(values) == 0 {
		return value
	}
	out, err := cssVarWord.ReplaceFunc(value, func(m regexp2.Match) string {
		word := m.String()
		if v, ok := values[word]; ok {
			return v
		}
		return word
	}, -1, -1)
	if err != nil {
		return value
	}
	return out
}
