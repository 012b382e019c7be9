package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/ion"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrNotBool = errors.New("expression did not evaluate to a bool")

// Env is the environment an expression is evaluated in.
type Env struct {
	Value       any      `expr:"value"`
	Type        string   `expr:"kind"`
	Annotations []string `expr:"annotations"`
	IsNull      bool     `expr:"isnull"`
	Index       int      `expr:"index"`
}

// NodeEnv returns the environment for the index'th top level value n.
func NodeEnv(n *ion.Node, index int) Env {
	anns := n.Annotations
	if anns == nil {
		anns = []string{}
	}
	return Env{
		Value:       n.Interface(),
		Type:        n.Type.String(),
		Annotations: anns,
		IsNull:      n.IsNull,
		Index:       index,
	}
}

// Program is a compiled expression. The registered functions are bound to
// the value being evaluated, so each evaluation compiles the source again
// against that value.
type Program struct {
	src string
}

// Compile checks src against the environment and registered functions.
func Compile(src string) (*Program, error) {
	if _, err := compile(src, ion.Null()); err != nil {
		return nil, err
	}
	return &Program{src: src}, nil
}

func compile(src string, doc *ion.Node) (*vm.Program, error) {
	opts := append(exprOpts(doc), expr.Env(Env{}))
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	return prg, nil
}

func (p *Program) String() string {
	return p.src
}

// Eval evaluates p on the index'th top level value n.
func (p *Program) Eval(n *ion.Node, index int) (any, error) {
	prg, err := compile(p.src, n)
	if err != nil {
		return nil, err
	}
	res, err := vm.Run(prg, NodeEnv(n, index))
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", p.src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q on value %d: %v\n", p.src, index, res)
	}
	return res, nil
}

// Match evaluates p as a predicate.
func (p *Program) Match(n *ion.Node, index int) (bool, error) {
	res, err := p.Eval(n, index)
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%q: %w, got %T", p.src, ErrNotBool, res)
	}
	return b, nil
}

// Map evaluates p and converts the result into a value.
func (p *Program) Map(n *ion.Node, index int) (*ion.Node, error) {
	res, err := p.Eval(n, index)
	if err != nil {
		return nil, err
	}
	v, err := FromAny(res)
	if err != nil {
		return nil, fmt.Errorf("could not translate result of %q: %w", p.src, err)
	}
	return v, nil
}

// Select returns the values of nodes matching p, in order.
func Select(p *Program, nodes []*ion.Node) ([]*ion.Node, error) {
	res := []*ion.Node{}
	for i, n := range nodes {
		ok, err := p.Match(n, i)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, n)
		}
	}
	return res, nil
}
