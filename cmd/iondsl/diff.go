package main

import (
	"fmt"

	"github.com/signadot/iondsl/dsl"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/libdiff"
	"github.com/signadot/iondsl/stream"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getNodes(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getNodes(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc, a, b)
	if err != nil {
		return err
	}
	verbose(cfg.MainConfig, "compared", "from", args[0], "to", args[1], "differs", differs)
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, a, b []*ion.Node) (bool, error) {
	w := cc.Out
	if cfg.Ion {
		d := libdiff.DiffAll(a, b)
		if d == nil {
			return false, nil
		}
		err := dsl.Encode(w, func(s dsl.Sequence) error {
			return s.Node(d)
		}, cfg.encOpts(w)...)
		return true, err
	}
	var opts []stream.Option
	if cfg.S {
		opts = append(opts, stream.WithSpacing())
	}
	lines, err := libdiff.Lines(a, b, opts...)
	if err != nil {
		return false, err
	}
	if !libdiff.Changed(lines) {
		return false, nil
	}
	if err := libdiff.WriteLines(w, lines, cfg.colored(w)); err != nil {
		return false, err
	}
	return true, nil
}
