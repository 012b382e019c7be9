package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/iondsl/convert"
	"github.com/signadot/iondsl/dsl"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"

	"github.com/scott-cotton/cli"
)

// inputs returns the files named by args, stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func withInput(cc *cli.Context, path string, fn func(io.Reader) error) error {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	if err := fn(r); err != nil {
		return fmt.Errorf("error processing %s: %w", path, err)
	}
	return nil
}

// readInto copies every value of r into s, decoding r as json, yaml or
// ion according to cfg.
func (cfg *MainConfig) readInto(r io.Reader, s dsl.Sequence) error {
	switch {
	case cfg.J:
		return convert.JSON(r, s)
	case cfg.Y:
		return convert.YAML(r, s)
	}
	dec, err := stream.NewDecoder(r)
	if err != nil {
		return err
	}
	return s.ValuesFrom(dec)
}

func getNodes(cfg *MainConfig, cc *cli.Context, path string) ([]*ion.Node, error) {
	var res []*ion.Node
	err := withInput(cc, path, func(r io.Reader) error {
		nodes, err := dsl.Nodes(func(s dsl.Sequence) error {
			return cfg.readInto(r, s)
		})
		res = nodes
		return err
	})
	return res, err
}

// writeNodes writes nodes to w as ion text, or as json with -J.
func (cfg *MainConfig) writeNodes(w io.Writer, nodes []*ion.Node) error {
	if cfg.JSONOut {
		return convert.WriteJSON(w, nodes)
	}
	return dsl.Encode(w, func(s dsl.Sequence) error {
		for _, n := range nodes {
			if err := s.Node(n); err != nil {
				return err
			}
		}
		return nil
	}, cfg.encOpts(w)...)
}
