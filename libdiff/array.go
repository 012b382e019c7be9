package libdiff

import (
	"strconv"

	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffArray diffs two lists or sexps element by element. Elements are
// matched by their canonical text; a deletion directly followed by an
// insertion at the same index is diffed with df. The result is a struct
// keyed by the index in the resulting sequence.
func DiffArray(from, to *ion.Node, df DiffFunc) *ion.Node {
	valueMap := map[string]rune{}
	fromRunes := mapValuesTo(valueMap, from)
	toRunes := mapValuesTo(valueMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	type entry struct {
		index int
		diff  *ion.Node
	}
	var (
		res     []entry
		deleted []*ion.Node
		delAt   int
	)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			deleted = from.Values[fi : fi+n]
			delAt = len(res)
			for j := range n {
				res = append(res, entry{index: ti + j, diff: MakeDiff(from.Values[fi+j], nil)})
			}
			fi += n
		case diffpatch.DiffInsert:
			for j := range n {
				t := to.Values[ti+j]
				if j < len(deleted) {
					// insertion after deletion, pair them up
					e := &res[delAt+j]
					e.index = ti + j
					e.diff = df(deleted[j], t)
					continue
				}
				res = append(res, entry{index: ti + j, diff: MakeDiff(nil, t)})
			}
			deleted = nil
			ti += n
		case diffpatch.DiffEqual:
			deleted = nil
			fi += n
			ti += n
		}
	}
	fields := []*ion.Node{}
	for i := range res {
		if res[i].diff == nil {
			continue
		}
		fields = append(fields, res[i].diff.WithField(strconv.Itoa(res[i].index)))
	}
	if len(fields) == 0 {
		return nil
	}
	return ion.FromFields(fields...).WithAnnotations(ArrayDiffAnnotation)
}

func mapValuesTo(valueMap map[string]rune, n *ion.Node) []rune {
	res := make([]rune, len(n.Values))
	for i, v := range n.Values {
		key := canonical(v)
		r, ok := valueMap[key]
		if !ok {
			r = rune(len(valueMap) + 1)
			valueMap[key] = r
		}
		res[i] = r
	}
	return res
}

func canonical(n *ion.Node) string {
	d, err := stream.Marshal([]*ion.Node{detach(n)})
	if err != nil {
		return ""
	}
	return string(d)
}
