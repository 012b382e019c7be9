package main

import (
	"errors"
	"fmt"

	"github.com/signadot/iondsl/eval"
	"github.com/signadot/iondsl/ion"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	path := args[0]
	for _, file := range inputs(args[1:]) {
		nodes, err := getNodes(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res, err := getPath(nodes, path)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", path, file, err)
		}
		verbose(cfg.MainConfig, "got", "file", file, "path", path, "found", len(res))
		if err := cfg.writeNodes(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

// getPath returns the value at path of each node that has one.
func getPath(nodes []*ion.Node, path string) ([]*ion.Node, error) {
	res := []*ion.Node{}
	for _, n := range nodes {
		v, err := eval.GetPath(n, path)
		if errors.Is(err, eval.ErrNoPath) {
			continue
		}
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
