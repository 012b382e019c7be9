package libdiff

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a Line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

// Line is one line of a textual diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs the canonical text of two datagrams line by line, one top
// level value per line.
func Lines(from, to []*ion.Node, opts ...stream.Option) ([]Line, error) {
	fromText, err := stream.Marshal(from, opts...)
	if err != nil {
		return nil, err
	}
	toText, err := stream.Marshal(to, opts...)
	if err != nil {
		return nil, err
	}
	return TextLines(string(fromText), string(toText)), nil
}

// TextLines diffs two texts line by line.
func TextLines(from, to string) []Line {
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(from, to)
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		if diff.Text == "" {
			continue
		}
		op := Equal
		switch diff.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			res = append(res, Line{Op: op, Text: line})
		}
	}
	return res
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for i := range lines {
		if lines[i].Op != Equal {
			return true
		}
	}
	return false
}

// WriteLines writes lines to w, each prefixed by its Op. Deletions and
// insertions are colored when colored is set.
func WriteLines(w io.Writer, lines []Line, colored bool) error {
	bw := bufio.NewWriter(w)
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	del.EnableColor()
	ins.EnableColor()
	for i := range lines {
		line := lines[i].Op.Prefix() + lines[i].Text
		if colored {
			switch lines[i].Op {
			case Delete:
				line = del.Sprint(line)
			case Insert:
				line = ins.Sprint(line)
			}
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
