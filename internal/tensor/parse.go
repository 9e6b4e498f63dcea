package tensor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseIndex parses a textual index expression into tokens. Entries are
// separated by top-level commas and may be integers, start:stop:step slices
// with any part omitted, "...", "newaxis" (or "None"), or bracketed integer or
// boolean lists such as [0,2] or [[true,false]].
//
// Example:
//
//	idx, err := ParseIndex("1:,::2,...,[0,1],newaxis")
func ParseIndex(expr string) ([]Index, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	parts, err := splitTopLevel(expr)
	if err != nil {
		return nil, err
	}
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	out := make([]Index, 0, len(parts))
	for _, p := range parts {
		tok, err := parseToken(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse index %q: %w", expr, err)
		}
		out = append(out, tok)
	}
	return out, nil
}

func splitTopLevel(expr string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i, c := range expr {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("parse index %q: unbalanced brackets: %w", expr, ErrInvalidIndex)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, expr[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("parse index %q: unbalanced brackets: %w", expr, ErrInvalidIndex)
	}
	return append(parts, expr[start:]), nil
}

func parseToken(s string) (Index, error) {
	switch {
	case s == "":
		return nil, fmt.Errorf("empty index: %w", ErrInvalidIndex)
	case s == "...":
		return Ellipsis{}, nil
	case s == "newaxis" || s == "None":
		return NewAxis{}, nil
	case strings.HasPrefix(s, "["):
		arr, err := parseIndexArray(s)
		if err != nil {
			return nil, err
		}
		return ArrayIndex{Array: arr}, nil
	case strings.Contains(s, ":"):
		return parseRange(s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("index %q: %w", s, ErrInvalidIndex)
	}
	return Integer(n), nil
}

func parseRange(s string) (Index, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return nil, fmt.Errorf("slice %q: %w", s, ErrInvalidIndex)
	}
	var rg Range
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("slice %q: %w", s, ErrInvalidIndex)
		}
		switch i {
		case 0:
			rg.Start, rg.HasStart = n, true
		case 1:
			rg.Stop, rg.HasStop = n, true
		default:
			if n == 0 {
				return nil, fmt.Errorf("slice %q: step cannot be zero: %w", s, ErrInvalidIndex)
			}
			rg.Step, rg.HasStep = n, true
		}
	}
	return rg, nil
}

// parseIndexArray decodes a JSON list of integers or booleans.
func parseIndexArray(s string) (*RawTensor, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("index array %q: %v: %w", s, err, ErrInvalidIndex)
	}
	data, err := indexData(v)
	if err != nil {
		return nil, fmt.Errorf("index array %q: %w", s, err)
	}
	arr, err := FromData(data)
	if err != nil {
		return nil, fmt.Errorf("index array %q: %w", s, err)
	}
	if arr.NumElements() == 0 {
		return NewRaw(arr.shape, Int64.DType())
	}
	return arr, nil
}

func indexData(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer %s: %w", x, ErrInvalidIndex)
		}
		return n, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			d, err := indexData(e)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%v: %w", v, ErrInvalidIndex)
	}
}
