package stream

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/iondsl/ion"
)

type Colorable struct {
	Type ion.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	AnnotationColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

// Colors maps a value type and role to a formatting function.
type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ion.Types() {
		able := Colorable{Type: t, Attr: AnnotationColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	for _, t := range []ion.Type{ion.IntType, ion.FloatType, ion.DecimalType} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}

	able.Type = ion.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ion.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ion.TimestampType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Type = ion.SymbolType
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	able.Type = ion.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = ion.BlobType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	able.Type = ion.ClobType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	able.Type = ion.StructType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ion.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ion.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
