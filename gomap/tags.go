package gomap

import (
	"reflect"
	"strings"
)

// field describes how a struct field maps to a struct member.
type field struct {
	index       []int
	name        string
	omitEmpty   bool
	symbol      bool
	annotations bool
}

// fields returns the mapped fields of struct type ty, in declaration
// order. Fields of embedded structs are promoted. The `ion` tag has the
// form "name,opt,...", options being omitempty, symbol (write a string as
// a symbol) and annotations (a []string field holding the struct's own
// annotations). A tag of "-" skips the field.
func fields(ty reflect.Type) []field {
	var res []field
	for i := range ty.NumField() {
		f := ty.Field(i)
		tag, hasTag := f.Tag.Lookup("ion")
		if tag == "-" || !f.IsExported() {
			continue
		}
		if f.Anonymous && !hasTag {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				for _, sub := range fields(et) {
					sub.index = append([]int{i}, sub.index...)
					res = append(res, sub)
				}
				continue
			}
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fd := field{index: []int{i}, name: name}
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			switch opt {
			case "omitempty":
				fd.omitEmpty = true
			case "symbol":
				fd.symbol = true
			case "annotations":
				fd.annotations = true
			}
		}
		res = append(res, fd)
	}
	return res
}

func byName(fs []field) map[string]*field {
	res := make(map[string]*field, len(fs))
	for i := range fs {
		if _, dup := res[fs[i].name]; dup {
			continue
		}
		res[fs[i].name] = &fs[i]
	}
	return res
}
