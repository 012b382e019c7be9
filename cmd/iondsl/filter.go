package main

import (
	"fmt"

	"github.com/signadot/iondsl/eval"
	"github.com/signadot/iondsl/ion"

	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Expr == "" && cfg.Map == "" {
		return fmt.Errorf("%w: filter requires -e or -m", cli.ErrUsage)
	}
	var pred, mapper *eval.Program
	if cfg.Expr != "" {
		pred, err = eval.Compile(cfg.Expr)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	if cfg.Map != "" {
		mapper, err = eval.Compile(cfg.Map)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	for _, file := range inputs(args) {
		nodes, err := getNodes(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res, err := filterNodes(pred, mapper, nodes)
		if err != nil {
			return fmt.Errorf("error filtering %s: %w", file, err)
		}
		verbose(cfg.MainConfig, "filtered", "file", file, "in", len(nodes), "out", len(res))
		if err := cfg.writeNodes(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func filterNodes(pred, mapper *eval.Program, nodes []*ion.Node) ([]*ion.Node, error) {
	res := []*ion.Node{}
	for i, n := range nodes {
		if pred != nil {
			ok, err := pred.Match(n, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		if mapper != nil {
			m, err := mapper.Map(n, i)
			if err != nil {
				return nil, err
			}
			n = m
		}
		res = append(res, n)
	}
	return res, nil
}
