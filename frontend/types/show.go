package types

import (
	"fmt"
	"log/slog"
	"strings"
)

func (t *Named) String() string    { return TypeString(t, nil) }
func (t *Generic) String() string  { return TypeString(t, nil) }
func (t *Func) String() string     { return TypeString(t, nil) }
func (t *Tuple) String() string    { return TypeString(t, nil) }
func (t *Union) String() string    { return TypeString(t, nil) }
func (t *Nullable) String() string { return TypeString(t, nil) }

// TypeString prints t, using names for the variables present in it
// and TypeVar.String for the rest
func TypeString(t Type, names map[TypeVar]string) string {
	sb := &strings.Builder{}
	writeType(sb, t, names, false)
	return sb.String()
}

func writeTypes(sb *strings.Builder, ts []Type, names map[TypeVar]string) {
	for i, t := range ts {
		if i != 0 {
			sb.WriteString(", ")
		}
		writeType(sb, t, names, false)
	}
}

// writeType writes t to sb. When nested is true, types with
// loose-binding syntax (functions and unions) get parenthesised
func writeType(sb *strings.Builder, t Type, names map[TypeVar]string, nested bool) {
	switch t := t.(type) {
	case TypeVar:
		if name, ok := names[t]; ok {
			sb.WriteString(name)
			return
		}
		sb.WriteString(t.String())
	case *Named:
		sb.WriteString(t.Name)
	case *Generic:
		sb.WriteString(t.Name)
		sb.WriteString("<")
		writeTypes(sb, t.Args, names)
		sb.WriteString(">")
	case *Func:
		if nested {
			sb.WriteString("(")
		}
		sb.WriteString("(")
		writeTypes(sb, t.Params, names)
		sb.WriteString(") -> ")
		writeType(sb, t.Return, names, false)
		if nested {
			sb.WriteString(")")
		}
	case *Tuple:
		sb.WriteString("(")
		writeTypes(sb, t.Elems, names)
		if len(t.Elems) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case *Union:
		if nested {
			sb.WriteString("(")
		}
		for i, v := range t.Variants {
			if i != 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(v.Tag)
			if len(v.Fields) > 0 {
				sb.WriteString("(")
				writeTypes(sb, v.Fields, names)
				sb.WriteString(")")
			}
		}
		if nested {
			sb.WriteString(")")
		}
	case *Nullable:
		writeType(sb, t.Inner, names, true)
		sb.WriteString("?")
	case nil:
		sb.WriteString("<nil>")
	default:
		panic(fmt.Sprintf("unexpected type %T", t))
	}
}

// Slog wraps a Type as a slog.LogValuer so that it only gets
// printed if the record is actually logged
func Slog(t Type) slog.LogValuer {
	return typeLogValuer{t}
}

type typeLogValuer struct{ t Type }

func (l typeLogValuer) LogValue() slog.Value {
	if l.t == nil {
		return slog.StringValue("<nil>")
	}
	return slog.StringValue(l.t.String())
}
