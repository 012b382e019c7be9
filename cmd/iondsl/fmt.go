package main

import (
	"io"

	"github.com/signadot/iondsl/dsl"

	"github.com/scott-cotton/cli"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, file := range inputs(args) {
		err := withInput(cc, file, func(r io.Reader) error {
			return formatReader(cfg, cc.Out, r)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func formatReader(cfg *FmtConfig, w io.Writer, r io.Reader) error {
	if cfg.JSONOut {
		nodes, err := dsl.Nodes(func(s dsl.Sequence) error {
			return cfg.readInto(r, s)
		})
		if err != nil {
			return err
		}
		return cfg.writeNodes(w, nodes)
	}
	return dsl.Encode(w, func(s dsl.Sequence) error {
		return cfg.readInto(r, s)
	}, cfg.encOpts(w)...)
}
