// SPDX-License-Identifier: MIT

package algebra

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Wire tags of the tagged JSON encoding.
const (
	tagReal       = "real"
	tagPolynomial = "polynomial"
	tagRatio      = "ratio"
)

// Marshal encodes v as tagged JSON:
//
//	Real        3.5                         (non-finite: ["real", "NaN"])
//	Symbolic    "Kp"  or  ["*", "Kp", 2]    (prefix arrays for inner nodes)
//	Polynomial  ["polynomial", ["s", [1, 3, 2]]]
//	Ratio       ["ratio", [<num>, <den>]]
func Marshal(v Value) ([]byte, error) {
	tree, err := encode(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(tree)
}

// Unmarshal decodes the format written by Marshal. Malformed input yields
// an error wrapping ErrDecode.
func Unmarshal(data []byte) (Value, error) {
	return decode(data)
}

func encode(v Value) (any, error) {
	switch x := v.(type) {
	case Real:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return []any{tagReal, strconv.FormatFloat(f, 'g', -1, 64)}, nil
		}

		return f, nil
	case Symbolic:
		if x.IsLeaf() {
			return x.Name(), nil
		}
		out := []any{string(x.Op())}
		for _, a := range x.args {
			t, err := encode(a)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}

		return out, nil
	case Polynomial:
		terms := make([]any, len(x.Terms))
		for i, t := range x.Terms {
			enc, err := encode(t)
			if err != nil {
				return nil, err
			}
			terms[i] = enc
		}

		return []any{tagPolynomial, []any{x.Param, terms}}, nil
	case Ratio:
		if !x.IsValid() {
			return nil, fmt.Errorf("algebra: encode: %w", ErrShapeMismatch)
		}
		num, err := encode(x.Num)
		if err != nil {
			return nil, err
		}
		den, err := encode(x.Den)
		if err != nil {
			return nil, err
		}

		return []any{tagRatio, []any{num, den}}, nil
	default:
		return nil, fmt.Errorf("algebra: encode %T: %w", v, ErrNoHandler)
	}
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDecode}, args...)...)
}

func decode(raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, decodeErr("empty input")
	}
	switch raw[0] {
	case '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, decodeErr("%v", err)
		}
		if name == "" {
			return nil, decodeErr("empty symbol name")
		}

		return Sym(name), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, decodeErr("%v", err)
		}

		return decodeArray(items)
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, decodeErr("%v", err)
		}

		return Real(f), nil
	}
}

func decodeArray(items []json.RawMessage) (Value, error) {
	if len(items) < 2 {
		return nil, decodeErr("tagged array needs at least 2 items, got %d", len(items))
	}
	var tag string
	if err := json.Unmarshal(items[0], &tag); err != nil {
		return nil, decodeErr("tag: %v", err)
	}

	switch tag {
	case tagReal:
		var s string
		if len(items) != 2 || json.Unmarshal(items[1], &s) != nil {
			return nil, decodeErr("real needs one string payload")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, decodeErr("real %q: %v", s, err)
		}

		return Real(f), nil
	case tagPolynomial:
		return decodePolynomial(items)
	case tagRatio:
		body, err := pair(items)
		if err != nil {
			return nil, err
		}
		num, err := decode(body[0])
		if err != nil {
			return nil, err
		}
		den, err := decode(body[1])
		if err != nil {
			return nil, err
		}
		r, err := NewRatio(num, den)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}

		return r, nil
	case string(SymAdd), string(SymMul), string(SymDiv), string(SymSub):
		if len(items) > 3 || (len(items) == 2 && tag != string(SymSub)) {
			return nil, decodeErr("operator %q with %d operands", tag, len(items)-1)
		}
		args := make([]Value, 0, len(items)-1)
		for _, it := range items[1:] {
			a, err := decode(it)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}

		return node(tag[0], args...), nil
	default:
		return nil, decodeErr("unknown tag %q", tag)
	}
}

// pair unpacks ["tag", [a, b]] into a and b.
func pair(items []json.RawMessage) ([]json.RawMessage, error) {
	if len(items) != 2 {
		return nil, decodeErr("tagged value needs one payload")
	}
	var body []json.RawMessage
	if err := json.Unmarshal(items[1], &body); err != nil || len(body) != 2 {
		return nil, decodeErr("payload must be a 2-item array")
	}

	return body, nil
}

func decodePolynomial(items []json.RawMessage) (Value, error) {
	body, err := pair(items)
	if err != nil {
		return nil, err
	}
	var param string
	if err := json.Unmarshal(body[0], &param); err != nil {
		return nil, decodeErr("polynomial parameter: %v", err)
	}
	var rawTerms []json.RawMessage
	if err := json.Unmarshal(body[1], &rawTerms); err != nil {
		return nil, decodeErr("polynomial terms: %v", err)
	}
	terms := make([]Value, len(rawTerms))
	for i, rt := range rawTerms {
		if terms[i], err = decode(rt); err != nil {
			return nil, err
		}
	}
	p, err := NewPolynomial(param, terms...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return p, nil
}
