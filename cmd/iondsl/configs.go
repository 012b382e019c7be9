package main

import (
	"io"
	"os"

	"github.com/signadot/iondsl/stream"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	S       bool `cli:"name=s aliases=spacing desc='put a space after separators'"`
	V       bool `cli:"name=v aliases=verbose desc='log progress to stderr'"`
	JSONOut bool `cli:"name=J aliases=ojson desc='write json instead of ion'"`

	J bool `cli:"name=j aliases=json desc='read json input'"`
	Y bool `cli:"name=y aliases=yaml desc='read yaml input'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []stream.Option {
	var res []stream.Option
	if cfg.S {
		res = append(res, stream.WithSpacing())
	}
	if cfg.Color {
		res = append(res, stream.WithColors(stream.NewColors()))
		return res
	}
	if cfg.colorSet() {
		return res
	}
	if isTerminal(w) {
		res = append(res, stream.WithColors(stream.NewColors()))
	}
	return res
}

// colored reports whether plain text output to w, such as a line diff,
// should be colored.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.colorSet() {
		return false
	}
	return isTerminal(w)
}

// colorSet reports whether -color was given explicitly, as in -color=false.
func (cfg *MainConfig) colorSet() bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	Patch string `cli:"name=p aliases=patch desc='json patch file to apply to json input'"`

	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Ion bool `cli:"name=ion desc='output a structural diff as ion'"`

	Diff *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Expr string `cli:"name=e aliases=expr desc='keep values for which the expression is true'"`
	Map  string `cli:"name=m aliases=map desc='replace each kept value by the result of the expression'"`

	Filter *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
