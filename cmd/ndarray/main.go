// Package main provides the ndarray command: it loads nested JSON data into
// an array, applies an index expression, a binary operation and a reduction,
// and prints the result.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/born-ml/scisoft/ndarray"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	data    string
	file    string
	dtype   string
	index   string
	op      string
	operand string
	reduce  string
	axis    string
	verbose bool
}

func run(args []string, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(stdout, "ndarray %s\n", version)
		return nil
	}

	var cfg config
	fs := flag.NewFlagSet("ndarray", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&cfg.data, "data", "", "Array data as nested JSON, e.g. [[0,1],[2,3]]")
	fs.StringVar(&cfg.file, "file", "", "Read the JSON data from a file")
	fs.StringVar(&cfg.dtype, "dtype", "", "Dtype to convert the data to (int8, float, complex, rgb, cint32(2), ...)")
	fs.StringVar(&cfg.index, "index", "", "Index expression, e.g. 1:,::2,...")
	fs.StringVar(&cfg.op, "op", "", "Binary operation: add sub mul div floordiv mod pow, or + - * / // % **")
	fs.StringVar(&cfg.operand, "operand", "", "Right-hand operand of -op as JSON")
	fs.StringVar(&cfg.reduce, "reduce", "", "Reduction: sum prod mean min max argmin argmax cumsum cumprod")
	fs.StringVar(&cfg.axis, "axis", "", "Reduction axis (all items when empty)")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zap.NewNop()
	if cfg.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = l
	}
	defer logger.Sync() //nolint:errcheck
	ndarray.SetLogger(logger)

	a, err := load(cfg)
	if err != nil {
		return err
	}
	logger.Debug("loaded array", zap.Stringer("dtype", a.DType()), zap.Ints("shape", a.Shape()))

	if a, err = apply(a, cfg); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "dtype: %s\n", a.DType())
	fmt.Fprintf(stdout, "shape: %v\n", []int(a.Shape()))
	fmt.Fprintln(stdout, a.String())
	return nil
}

func load(cfg config) (*ndarray.Array, error) {
	raw := []byte(cfg.data)
	if cfg.file != "" {
		b, err := os.ReadFile(cfg.file)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		raw = b
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("no data: use -data or -file")
	}

	data, err := decodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}

	var opts []ndarray.Option
	if cfg.dtype != "" {
		dt, err := ndarray.ParseDType(cfg.dtype)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ndarray.WithDType(dt))
	}
	return ndarray.New(data, opts...)
}

func apply(a *ndarray.Array, cfg config) (*ndarray.Array, error) {
	var err error
	if cfg.index != "" {
		if a, err = a.GetS(cfg.index); err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
	}

	if cfg.op != "" {
		if cfg.operand == "" {
			return nil, errors.New("-op needs -operand")
		}
		operand, err := decodeJSON([]byte(cfg.operand))
		if err != nil {
			return nil, fmt.Errorf("decode operand: %w", err)
		}
		if a, err = a.Apply(cfg.op, operand); err != nil {
			return nil, fmt.Errorf("op %s: %w", cfg.op, err)
		}
	}

	if cfg.reduce != "" {
		var opts []ndarray.Option
		if cfg.axis != "" {
			ax, err := strconv.Atoi(cfg.axis)
			if err != nil {
				return nil, fmt.Errorf("axis %q: %w", cfg.axis, err)
			}
			opts = append(opts, ndarray.Axis(ax))
		}
		if a, err = a.Reduce(cfg.reduce, opts...); err != nil {
			return nil, fmt.Errorf("reduce %s: %w", cfg.reduce, err)
		}
	}
	return a, nil
}

// decodeJSON decodes nested JSON keeping integer literals as int64.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return convertNumbers(v)
}

func convertNumbers(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		return x.Float64()
	case []any:
		for i, e := range x {
			c, err := convertNumbers(e)
			if err != nil {
				return nil, err
			}
			x[i] = c
		}
		return x, nil
	case bool:
		return x, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value %T", v)
	}
}
