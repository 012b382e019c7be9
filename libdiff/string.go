package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/iondsl/ion"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString diffs two strings character by character. The result is a
// struct keyed by byte offset into the resulting string, each member a
// deletion, insertion or replacement. When more than half of the shorter
// string changes the whole value is replaced instead.
func DiffString(from, to *ion.Node) *ion.Node {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from.String, "\n") && strings.Contains(to.String, "\n")
	diffs := diffCfg.DiffMain(from.String, to.String, doMultiLine)
	diffSize := 0
	var (
		keys []int
		res  = map[int]*ion.Node{}
	)
	ri := 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffInsert:
			to := ion.FromString(diff.Text)
			if from := res[ri]; from != nil {
				// insert after delete -> make replace
				res[ri] = MakeDiff(ion.FromString(from.String), to)
				if len(diff.Text) > len(from.String) {
					diffSize += len(diff.Text) - len(from.String)
				}
			} else {
				keys = append(keys, ri)
				res[ri] = annotate(to, InsertAnnotation)
				diffSize += len(diff.Text)
			}
			ri += len(diff.Text)
		case diffpatch.DiffDelete:
			keys = append(keys, ri)
			res[ri] = annotate(ion.FromString(diff.Text), DeleteAnnotation)
			diffSize += len(diff.Text)
		case diffpatch.DiffEqual:
			ri += len(diff.Text)
		}
	}
	if diffSize == 0 {
		return nil
	}
	if diffSize > min(len(from.String), len(to.String))/2 {
		return MakeDiff(from, to)
	}
	fields := make([]*ion.Node, len(keys))
	for i, k := range keys {
		fields[i] = res[k].WithField(strconv.Itoa(k))
	}
	return ion.FromFields(fields...).WithAnnotations(StringDiffAnnotation)
}
