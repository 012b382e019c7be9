package convert

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/dsl"
)

// PatchJSON applies the RFC 6902 patch to the JSON document doc.
func PatchJSON(doc, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decoding json patch: %w", err)
	}
	if debug.Convert() {
		debug.Logf("convert: applying %d patch operations\n", len(ops))
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("applying json patch: %w", err)
	}
	return out, nil
}

// PatchedJSON applies patch to doc and writes the result to s.
func PatchedJSON(doc, patch []byte, s dsl.Sequence) error {
	out, err := PatchJSON(doc, patch)
	if err != nil {
		return err
	}
	return JSON(bytes.NewReader(out), s)
}
