package tensor

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
	"sync"
)

// PrintOptions controls how arrays are rendered by String.
type PrintOptions struct {
	// Precision is the number of significant digits for floating-point values.
	Precision int
	// Threshold is the item count above which arrays are summarised.
	Threshold int
	// EdgeItems is the number of items kept at each edge of a summarised axis.
	EdgeItems int
}

// DefaultPrintOptions returns the printing defaults.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{Precision: 8, Threshold: 1000, EdgeItems: 3}
}

var (
	printOpts   = DefaultPrintOptions()
	printOptsMu sync.RWMutex
)

// SetPrintOptions replaces the printing options used by String.
func SetPrintOptions(opts PrintOptions) {
	printOptsMu.Lock()
	printOpts = opts
	printOptsMu.Unlock()
}

// CurrentPrintOptions returns the printing options in effect.
func CurrentPrintOptions() PrintOptions {
	printOptsMu.RLock()
	defer printOptsMu.RUnlock()
	return printOpts
}

// String renders the array with the current print options, e.g.
// "[[0 1 2]\n [3 4 5]]". Compound items print as parenthesised tuples.
func (r *RawTensor) String() string {
	return r.Format(CurrentPrintOptions())
}

// Format renders the array with explicit print options.
func (r *RawTensor) Format(opts PrintOptions) string {
	summarise := opts.Threshold > 0 && r.NumElements() > opts.Threshold && opts.EdgeItems > 0
	var sb strings.Builder
	r.format(&sb, 0, r.offset, opts, summarise)
	return sb.String()
}

func (r *RawTensor) format(sb *strings.Builder, dim, off int, opts PrintOptions, summarise bool) {
	if dim == len(r.shape) {
		sb.WriteString(r.formatItem(off, opts))
		return
	}

	n := r.shape[dim]
	sep := " "
	if dim < len(r.shape)-1 {
		sep = "\n" + strings.Repeat(" ", dim+1)
		if len(r.shape)-dim > 2 {
			sep = "\n" + sep
		}
	}

	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(sep)
		}
		if summarise && n > 2*opts.EdgeItems && i == opts.EdgeItems {
			sb.WriteString("...")
			sb.WriteString(sep)
			i = n - opts.EdgeItems
		}
		r.format(sb, dim+1, off+i*r.stride[dim], opts, summarise)
	}
	sb.WriteByte(']')
}

func (r *RawTensor) formatItem(off int, opts PrintOptions) string {
	if r.dtype.IsCompound() {
		step := r.dtype.kind.Size()
		parts := make([]string, r.dtype.Elements())
		for j := range parts {
			parts[j] = r.formatValue(off+j*step, opts)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return r.formatValue(off, opts)
}

func (r *RawTensor) formatValue(off int, opts PrintOptions) string {
	switch r.dtype.kind.Category() {
	case CategoryBool:
		return strconv.FormatBool(r.BoolAt(off))
	case CategoryInt:
		if r.dtype.kind == Uint64 {
			return fmt.Sprint(r.ValueAt(off))
		}
		return strconv.FormatInt(r.IntAt(off), 10)
	case CategoryFloat:
		return formatFloat(r.FloatAt(off), opts.Precision)
	default:
		z := r.ComplexAt(off)
		if cmplx.IsNaN(z) {
			return "nan+nanj"
		}
		im := imag(z)
		sign := "+"
		if im < 0 || (im == 0 && math.Signbit(im)) {
			sign = "-"
			im = -im
		}
		return formatFloat(real(z), opts.Precision) + sign + formatFloat(im, opts.Precision) + "j"
	}
}

func formatFloat(f float64, precision int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if precision <= 0 {
		precision = -1
	}
	s := strconv.FormatFloat(f, 'g', precision, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += "."
	}
	return s
}
