package libdiff

import (
	"github.com/signadot/iondsl/ion"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffStruct diffs the members of two structs by field name. Members whose
// names appear in both are diffed with df, the others are deleted or
// inserted. The result is a struct holding only the members that differ.
func DiffStruct(from, to *ion.Node, df DiffFunc) *ion.Node {
	fieldMap := map[string]rune{}
	fromRunes := mapFieldsTo(fieldMap, from)
	toRunes := mapFieldsTo(fieldMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	res := []*ion.Node{}
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range []rune(diff.Text) {
				f := from.Values[fi]
				res = append(res, named(MakeDiff(f, nil), f.Field))
				fi++
			}
		case diffpatch.DiffEqual:
			for range []rune(diff.Text) {
				f, t := from.Values[fi], to.Values[ti]
				if d := df(f, t); d != nil {
					res = append(res, named(d, f.Field))
				}
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range []rune(diff.Text) {
				t := to.Values[ti]
				res = append(res, named(MakeDiff(nil, t), t.Field))
				ti++
			}
		}
	}
	if len(res) == 0 {
		return nil
	}
	return ion.FromFields(res...).WithAnnotations(StructDiffAnnotation)
}

func mapFieldsTo(fieldMap map[string]rune, n *ion.Node) []rune {
	res := make([]rune, len(n.Values))
	for i, v := range n.Values {
		name := ""
		if v.Field != nil {
			name = v.Field.String()
		}
		r, ok := fieldMap[name]
		if !ok {
			r = rune(len(fieldMap) + 1)
			fieldMap[name] = r
		}
		res[i] = r
	}
	return res
}

func named(n *ion.Node, field *ion.SymbolToken) *ion.Node {
	if field != nil {
		tok := *field
		n.Field = &tok
	}
	return n
}
