package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Containers bool
	Stream     bool
	Decode     bool
	Convert    bool
	Eval       bool
}

var d *debug

func init() {
	d = &debug{}
	d.Containers = boolEnv("IONDSL_DEBUG_CONTAINERS")
	d.Stream = boolEnv("IONDSL_DEBUG_STREAM")
	d.Decode = boolEnv("IONDSL_DEBUG_DECODE")
	d.Convert = boolEnv("IONDSL_DEBUG_CONVERT")
	d.Eval = boolEnv("IONDSL_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Containers() bool {
	return d.Containers
}
func Stream() bool {
	return d.Stream
}
func Decode() bool {
	return d.Decode
}
func Convert() bool {
	return d.Convert
}
func Eval() bool {
	return d.Eval
}
