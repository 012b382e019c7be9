package eval

import (
	"os"

	"github.com/signadot/iondsl/ion"

	"github.com/expr-lang/expr"
)

func builtins() []*Func {
	return []*Func{
		{
			Name: "annotated",
			Fn: func(doc *ion.Node, params ...any) (any, error) {
				name := params[0].(string)
				for _, a := range doc.Annotations {
					if a == name {
						return true, nil
					}
				}
				return false, nil
			},
			Types: []any{new(func(string) bool)},
		},
		{
			Name: "getpath",
			Fn: func(doc *ion.Node, params ...any) (any, error) {
				res, err := GetPath(doc, params[0].(string))
				if err != nil {
					return nil, err
				}
				return res.Interface(), nil
			},
			Types: []any{new(func(string) any)},
		},
		{
			Name: "haspath",
			Fn: func(doc *ion.Node, params ...any) (any, error) {
				_, err := GetPath(doc, params[0].(string))
				return err == nil, nil
			},
			Types: []any{new(func(string) bool)},
		},
		{
			Name: "typeof",
			Fn: func(doc *ion.Node, params ...any) (any, error) {
				res, err := GetPath(doc, params[0].(string))
				if err != nil {
					return nil, err
				}
				return res.Type.String(), nil
			},
			Types: []any{new(func(string) string)},
		},
		{
			Name: "getenv",
			Fn: func(_ *ion.Node, params ...any) (any, error) {
				return os.Getenv(params[0].(string)), nil
			},
			Types: []any{new(func(string) string)},
		},
	}
}

func exprOpts(doc *ion.Node) []expr.Option {
	funcs := Funcs()
	res := make([]expr.Option, 0, len(funcs))
	for _, f := range funcs {
		fn := f.Fn
		res = append(res, expr.Function(f.Name, func(params ...any) (any, error) {
			return fn(doc, params...)
		}, f.Types...))
	}
	return res
}
