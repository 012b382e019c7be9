package eval

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/signadot/iondsl/ion"
)

var (
	mu sync.RWMutex
	d  = map[string]*Func{}
)

var ErrFuncExists = errors.New("function exists")

// Func is a function available to filter expressions. Fn receives the
// value being evaluated followed by the call's arguments. Types holds the
// signatures passed to expr for type checking, such as
// new(func(string) bool).
type Func struct {
	Name  string
	Fn    func(doc *ion.Node, params ...any) (any, error)
	Types []any
}

func Register(f *Func) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[f.Name]
	if present {
		return fmt.Errorf("%s: %w", f.Name, ErrFuncExists)
	}
	d[f.Name] = f
	return nil
}

func init() {
	for _, f := range builtins() {
		Register(f)
	}
}

func Lookup(name string) *Func {
	mu.RLock()
	defer mu.RUnlock()
	return d[name]
}

// Funcs returns the registered functions ordered by name.
func Funcs() []*Func {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]*Func, 0, len(d))
	for _, f := range d {
		res = append(res, f)
	}
	slices.SortFunc(res, func(a, b *Func) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return res
}
