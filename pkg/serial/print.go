package serial

import (
	"fmt"
	"strconv"
	"strings"
)

// indentWidth is the number of spaces per nesting depth in debug output.
const indentWidth = 4

// String renders the value as indented debug text.
//
// Scalars render as literals (null, true, 3.14, "text"); strings are quoted
// but embedded quotes and control characters are not escaped, so the output
// is not parseable. References render as &r<id><Type>, and a definition tag
// prefixes the variant's own rendering with &d<id>. Non-empty lists and
// dictionaries place one entry per line, indented four spaces per depth,
// with the closing bracket on its own line at the parent's indent. Empty
// composites render as [] and {}.
func (v *Value) String() string {
	var sb strings.Builder
	v.render(&sb, 0)
	return sb.String()
}

func (v *Value) render(sb *strings.Builder, depth int) {
	if v.hasDef {
		fmt.Fprintf(sb, "&d%d ", v.defID)
	}

	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.boolVal))
	case KindReal:
		sb.WriteString(strconv.FormatFloat(v.realVal, 'g', -1, 64))
	case KindString:
		sb.WriteByte('"')
		sb.WriteString(v.strVal)
		sb.WriteByte('"')
	case KindRef:
		fmt.Fprintf(sb, "&r%d%s", v.ref.ID, v.ref.Type)
	case KindList:
		v.renderList(sb, depth)
	case KindDict:
		v.renderDict(sb, depth)
	}
}

func (v *Value) renderList(sb *strings.Builder, depth int) {
	if len(v.items) == 0 {
		sb.WriteString("[]")
		return
	}
	sb.WriteString("[\n")
	for _, item := range v.items {
		indent(sb, depth+1)
		item.render(sb, depth+1)
		sb.WriteByte('\n')
	}
	indent(sb, depth)
	sb.WriteByte(']')
}

func (v *Value) renderDict(sb *strings.Builder, depth int) {
	if len(v.keys) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{\n")
	for _, key := range v.keys {
		indent(sb, depth+1)
		sb.WriteString(key)
		sb.WriteString(": ")
		v.entries[key].render(sb, depth+1)
		sb.WriteByte('\n')
	}
	indent(sb, depth)
	sb.WriteByte('}')
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat(" ", indentWidth*depth))
}
