package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/iondsl/convert"
	"github.com/signadot/iondsl/dsl"

	"github.com/scott-cotton/cli"
)

func convertCmd(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Patch != "" && cfg.Y {
		return fmt.Errorf("%w: -p applies only to json input", cli.ErrUsage)
	}
	var patch []byte
	if cfg.Patch != "" {
		patch, err = os.ReadFile(cfg.Patch)
		if err != nil {
			return fmt.Errorf("error reading patch %s: %w", cfg.Patch, err)
		}
	}
	for _, file := range inputs(args) {
		err := withInput(cc, file, func(r io.Reader) error {
			return convertReader(cfg, cc.Out, r, patch)
		})
		if err != nil {
			return err
		}
		verbose(cfg.MainConfig, "converted", "file", file, "patched", patch != nil)
	}
	return nil
}

func convertReader(cfg *ConvertConfig, w io.Writer, r io.Reader, patch []byte) error {
	read := func(s dsl.Sequence) error {
		if cfg.Y {
			return convert.YAML(r, s)
		}
		if patch == nil {
			return convert.JSON(r, s)
		}
		doc, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return convert.PatchedJSON(doc, patch, s)
	}
	if cfg.JSONOut {
		nodes, err := dsl.Nodes(read)
		if err != nil {
			return err
		}
		return cfg.writeNodes(w, nodes)
	}
	return dsl.Encode(w, read, cfg.encOpts(w)...)
}
