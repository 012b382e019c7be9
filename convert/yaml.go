package convert

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/dsl"
	"github.com/signadot/iondsl/ion"
	"gopkg.in/yaml.v3"
)

// ErrYAML is returned for YAML input that cannot be represented.
var ErrYAML = errors.New("invalid yaml")

// maxAliasDepth bounds alias expansion.
const maxAliasDepth = 64

// YAML writes every document in r to s.
func YAML(r io.Reader, s dsl.Sequence) error {
	dec := yaml.NewDecoder(r)
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := yamlValue(&root, inSeq(s), 0); err != nil {
			return err
		}
	}
}

func yamlValue(n *yaml.Node, t target, aliases int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return yamlValue(n.Content[0], t, aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return fmt.Errorf("%w: alias nesting too deep at line %d", ErrYAML, n.Line)
		}
		return yamlValue(n.Alias, t, aliases+1)
	case yaml.SequenceNode:
		return t.list(func(s dsl.Sequence) error {
			for _, c := range n.Content {
				if err := yamlValue(c, inSeq(s), aliases); err != nil {
					return err
				}
			}
			return nil
		}, annotations(n))
	case yaml.MappingNode:
		return t.strct(func(f dsl.Fields) error {
			for i := 0; i+1 < len(n.Content); i += 2 {
				k := n.Content[i]
				if k.Kind != yaml.ScalarNode {
					return fmt.Errorf("%w: non scalar key at line %d", ErrYAML, k.Line)
				}
				if err := yamlValue(n.Content[i+1], member(f, k.Value), aliases); err != nil {
					return err
				}
			}
			return nil
		}, annotations(n))
	case yaml.ScalarNode:
		return yamlScalar(n, t)
	}
	return fmt.Errorf("%w: node kind %d at line %d", ErrYAML, n.Kind, n.Line)
}

// annotations returns the local tag of n, without its leading "!", as an
// annotation list.
func annotations(n *yaml.Node) []string {
	if n.Tag == "" || n.Tag == "!" || strings.HasPrefix(n.Tag, "!!") || !strings.HasPrefix(n.Tag, "!") {
		return nil
	}
	return []string{strings.TrimPrefix(n.Tag, "!")}
}

func yamlScalar(n *yaml.Node, t target) error {
	anns := annotations(n)
	if len(anns) > 0 {
		plain := *n
		plain.Tag = ""
		n = &plain
	}
	tag := n.ShortTag()
	if debug.Convert() {
		debug.Logf("convert: yaml %s %q at line %d\n", tag, n.Value, n.Line)
	}
	bad := func(err error) error {
		return fmt.Errorf("%w: %s %q at line %d: %w", ErrYAML, tag, n.Value, n.Line, err)
	}
	switch tag {
	case "!!null":
		return t.null(anns)
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return bad(err)
		}
		return t.bool(v, anns)
	case "!!int":
		var v int64
		if err := n.Decode(&v); err == nil {
			return t.int(v, anns)
		}
		b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0)
		if !ok {
			return bad(errors.New("not an integer"))
		}
		return t.bigInt(b, anns)
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return bad(err)
		}
		return t.float(v, anns)
	case "!!timestamp":
		var v time.Time
		if err := n.Decode(&v); err != nil {
			return bad(err)
		}
		return t.timestamp(yamlTimestamp(n.Value, v), anns)
	case "!!binary":
		v, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return bad(err)
		}
		return t.blob(v, anns)
	}
	return t.string(n.Value, anns)
}

// yamlTimestamp keeps the precision written in the source: a date only
// value is day precision.
func yamlTimestamp(src string, v time.Time) ion.Timestamp {
	switch {
	case len(strings.TrimSpace(src)) == len("2006-01-02"):
		return ion.NewTimestamp(v, ion.Day)
	case v.Nanosecond() != 0:
		return ion.NewTimestamp(v, ion.Fraction)
	}
	return ion.NewTimestamp(v, ion.Second)
}
