package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/iondsl/ion"
)

var (
	ErrBadPath = errors.New("bad path")
	ErrNoPath  = errors.New("no such path")
)

// GetPath returns the value of n at path. Paths have the form written by
// the stream encoder, such as a.'b c'[2], optionally preceded by "$" for
// the root. Struct members are found by the first matching field name,
// "$N" matching a field without text by symbol ID.
func GetPath(n *ion.Node, path string) (*ion.Node, error) {
	p := strings.TrimPrefix(path, "$")
	cur := n
	first := true
	for p != "" {
		switch {
		case p[0] == '[':
			end := strings.IndexByte(p, ']')
			if end == -1 {
				return nil, fmt.Errorf("%w %q: unterminated index", ErrBadPath, path)
			}
			i, err := strconv.Atoi(p[1:end])
			if err != nil || i < 0 {
				return nil, fmt.Errorf("%w %q: bad index %q", ErrBadPath, path, p[1:end])
			}
			if cur.IsNull || (cur.Type != ion.ListType && cur.Type != ion.SexpType) {
				return nil, fmt.Errorf("%w %q: %s is not a sequence", ErrNoPath, path, cur.Type)
			}
			if i >= len(cur.Values) {
				return nil, fmt.Errorf("%w %q: index %d out of range", ErrNoPath, path, i)
			}
			cur = cur.Values[i]
			p = p[end+1:]
		default:
			if p[0] == '.' {
				p = p[1:]
			} else if !first {
				return nil, fmt.Errorf("%w %q: expected '.' or '['", ErrBadPath, path)
			}
			name, rest, err := pathName(p)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrBadPath, path, err)
			}
			if cur.IsNull || cur.Type != ion.StructType {
				return nil, fmt.Errorf("%w %q: %s is not a struct", ErrNoPath, path, cur.Type)
			}
			v := member(cur, name)
			if v == nil {
				return nil, fmt.Errorf("%w %q: no field %q", ErrNoPath, path, name)
			}
			cur = v
			p = rest
		}
		first = false
	}
	return cur, nil
}

func pathName(p string) (string, string, error) {
	if p == "" {
		return "", "", errors.New("empty field name")
	}
	if p[0] != '\'' {
		end := strings.IndexAny(p, ".[")
		if end == -1 {
			end = len(p)
		}
		if end == 0 {
			return "", "", errors.New("empty field name")
		}
		return p[:end], p[end:], nil
	}
	b := &strings.Builder{}
	for i := 1; i < len(p); i++ {
		switch p[i] {
		case '\\':
			if i+1 == len(p) {
				return "", "", errors.New("unterminated quoted field")
			}
			i++
			b.WriteByte(p[i])
		case '\'':
			return b.String(), p[i+1:], nil
		default:
			b.WriteByte(p[i])
		}
	}
	return "", "", errors.New("unterminated quoted field")
}

func member(n *ion.Node, name string) *ion.Node {
	for _, v := range n.Values {
		if v.Field != nil && v.Field.String() == name {
			return v
		}
	}
	return nil
}
