package convert

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/dsl"
	"github.com/signadot/iondsl/ion"
)

// ErrJSON is returned for JSON input that is not a sequence of values.
var ErrJSON = errors.New("invalid json")

// JSON writes every JSON value in r to s.
func JSON(r io.Reader, s dsl.Sequence) error {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := jsonValue(dec, tok, inSeq(s)); err != nil {
			return err
		}
	}
}

func jsonValue(dec *gojson.Decoder, tok any, t target) error {
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '[':
			return t.list(func(s dsl.Sequence) error {
				for dec.More() {
					tok, err := dec.Token()
					if err != nil {
						return err
					}
					if err := jsonValue(dec, tok, inSeq(s)); err != nil {
						return err
					}
				}
				return closeDelim(dec, ']')
			}, nil)
		case '{':
			return t.strct(func(f dsl.Fields) error {
				for dec.More() {
					key, err := dec.Token()
					if err != nil {
						return err
					}
					name, ok := key.(string)
					if !ok {
						return fmt.Errorf("%w: object key %v", ErrJSON, key)
					}
					tok, err := dec.Token()
					if err != nil {
						return err
					}
					if err := jsonValue(dec, tok, member(f, name)); err != nil {
						return err
					}
				}
				return closeDelim(dec, '}')
			}, nil)
		}
		return fmt.Errorf("%w: unexpected %q", ErrJSON, v)
	case string:
		return t.string(v, nil)
	case bool:
		return t.bool(v, nil)
	case nil:
		return t.null(nil)
	case gojson.Number:
		return jsonNumber(string(v), t)
	case float64:
		return t.float(v, nil)
	}
	return fmt.Errorf("%w: unexpected token %T", ErrJSON, tok)
}

func closeDelim(dec *gojson.Decoder, want gojson.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(gojson.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrJSON, want, tok)
	}
	return nil
}

func jsonNumber(num string, t target) error {
	if debug.Convert() {
		debug.Logf("convert: json number %s\n", num)
	}
	switch {
	case strings.ContainsAny(num, "eE"):
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return fmt.Errorf("%w: number %s", ErrJSON, num)
		}
		return t.float(f, nil)
	case strings.Contains(num, "."):
		d, err := ion.ParseDecimal(num)
		if err != nil {
			return err
		}
		return t.decimal(d, nil)
	}
	if i, err := strconv.ParseInt(num, 10, 64); err == nil {
		return t.int(i, nil)
	}
	b, ok := new(big.Int).SetString(num, 10)
	if !ok {
		return fmt.Errorf("%w: number %s", ErrJSON, num)
	}
	return t.bigInt(b, nil)
}

// WriteJSON renders nodes as JSON, one value per line. Annotations are
// dropped, decimals become numbers and blobs base64 strings.
func WriteJSON(w io.Writer, nodes []*ion.Node) error {
	enc := gojson.NewEncoder(w)
	for _, n := range nodes {
		if err := enc.Encode(n.Interface()); err != nil {
			return err
		}
	}
	return nil
}
