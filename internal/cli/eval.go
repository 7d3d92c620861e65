package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/ufunc"
)

var errMalformedArgs = errors.New("malformed arguments")

// GeometrySummary describes one geometry of a result. Geometries are never
// serialized.
type GeometrySummary struct {
	Type        string `json:"type" yaml:"type"`
	HasZ        bool   `json:"has_z" yaml:"has_z"`
	Coordinates int32  `json:"coordinates" yaml:"coordinates"`
}

func (s GeometrySummary) String() string {
	z := ""
	if s.HasZ {
		z = " Z"
	}
	return fmt.Sprintf("%s%s (%d coordinates)", s.Type, z, s.Coordinates)
}

// EvalResult is the result of the eval command. Values are in row-major
// order.
type EvalResult struct {
	Op     string `json:"op" yaml:"op"`
	Engine string `json:"engine" yaml:"engine"`
	DType  string `json:"dtype" yaml:"dtype"`
	Shape  []int  `json:"shape" yaml:"shape"`
	Values any    `json:"values" yaml:"values"`
}

// WriteText renders one value per line.
func (r *EvalResult) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s -> %s%v (%s)\n", r.Op, r.DType, r.Shape, r.Engine); err != nil {
		return err
	}
	var err error
	switch v := r.Values.(type) {
	case []GeometrySummary:
		for i, s := range v {
			_, err = fmt.Fprintf(w, "[%d] %s\n", i, s)
		}
	case []bool:
		err = writeValues(w, v)
	case []int:
		err = writeValues(w, v)
	case []int32:
		err = writeValues(w, v)
	case []float64:
		err = writeValues(w, v)
	}
	return err
}

func writeValues[T any](w io.Writer, values []T) error {
	for i, v := range values {
		if _, err := fmt.Fprintf(w, "[%d] %v\n", i, v); err != nil {
			return err
		}
	}
	return nil
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "eval <op>",
		Short: "Evaluate a ufunc over JSON arguments",
		Long: `Evaluate one registered ufunc over JSON arguments.

--args is a JSON array with one entry per ufunc input. Numbers and nested
numeric arrays become numeric operands; an object {"op": name, "args": [...]}
is evaluated first and its result used as the operand. Geometry results are
summarized, not serialized.

Example:
  geovec eval distance --args '[{"op":"points","args":[[[0,0],[3,4]]]}, {"op":"points","args":[[0,0]]}]'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], rawArgs, cmd)
		},
	}

	cmd.Flags().StringVar(&rawArgs, "args", "[]", "JSON array of ufunc arguments")

	return cmd
}

func runEval(opts *RootOptions, op, rawArgs string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	u, ok := ufunc.Lookup(op)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown op %q", op))
	}

	var raw []any
	if err := json.Unmarshal([]byte(rawArgs), &raw); err != nil {
		return WrapExitError(ExitCommandError, "invalid --args", err)
	}

	eng, err := openEngine(opts.Engine)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open engine", err)
	}
	ctx, err := geovec.Init(eng,
		geovec.WithLogger(newLogger(opts, cmd)),
		geovec.WithNoticeHandler(func(n geovec.Notice) {
			formatter.VerboseLog("notice: %s", n)
		}),
	)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot initialize context", err)
	}
	defer func() { _ = ctx.Close() }()
	formatter.VerboseLog("context %s on engine %s", ctx.ID(), opts.Engine)

	res, err := apply(ctx, u, raw)
	if err != nil {
		if errors.Is(err, errMalformedArgs) {
			return WrapExitError(ExitCommandError, "invalid --args", err)
		}
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}

	result, err := summarize(ctx, res)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot summarize result", err)
	}
	result.Op = op
	result.Engine = opts.Engine
	return formatter.Success(result)
}

// apply decodes raw arguments and applies u to them.
func apply(ctx *geovec.Context, u ufunc.Ufunc, raw []any) (any, error) {
	args := make([]any, len(raw))
	for i, r := range raw {
		a, err := decodeArg(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", u.Name(), i, err)
		}
		args[i] = a
	}
	return u.Apply(ctx, args...)
}

func decodeArg(ctx *geovec.Context, v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return x, nil
	case []any:
		return numericArray(x)
	case map[string]any:
		name, ok := x["op"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: nested call needs a string \"op\"", errMalformedArgs)
		}
		u, ok := ufunc.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown op %q", errMalformedArgs, name)
		}
		var raw []any
		if a, present := x["args"]; present {
			if raw, ok = a.([]any); !ok {
				return nil, fmt.Errorf("%w: \"args\" of %s must be an array", errMalformedArgs, name)
			}
		}
		return apply(ctx, u, raw)
	default:
		return nil, fmt.Errorf("%w: unsupported value %v", errMalformedArgs, v)
	}
}

// numericArray converts nested JSON arrays of numbers into a rectangular
// float64 array.
func numericArray(v []any) (*array.Array[float64], error) {
	var (
		shape []int
		data  []float64
	)
	var walk func(v any, depth int) error
	walk = func(v any, depth int) error {
		switch x := v.(type) {
		case float64:
			if depth != len(shape) {
				return fmt.Errorf("%w: ragged nested array", errMalformedArgs)
			}
			data = append(data, x)
		case []any:
			switch {
			case depth == len(shape) && len(data) == 0:
				shape = append(shape, len(x))
			case depth >= len(shape) || shape[depth] != len(x):
				return fmt.Errorf("%w: ragged nested array", errMalformedArgs)
			}
			for _, e := range x {
				if err := walk(e, depth+1); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: arrays must hold numbers, got %v", errMalformedArgs, v)
		}
		return nil
	}
	if err := walk(v, 0); err != nil {
		return nil, err
	}
	return array.FromSlice(data, shape...)
}

func shapeOf(shape []int) []int {
	if shape == nil {
		return []int{}
	}
	return shape
}

func summarize(ctx *geovec.Context, res any) (*EvalResult, error) {
	switch a := res.(type) {
	case *array.Array[bool]:
		return &EvalResult{DType: "bool", Shape: shapeOf(a.Shape()), Values: a.Values()}, nil
	case *array.Array[uint8]:
		values := make([]int, 0, a.Size())
		for _, v := range a.Values() {
			values = append(values, int(v))
		}
		return &EvalResult{DType: "uint8", Shape: shapeOf(a.Shape()), Values: values}, nil
	case *array.Array[int32]:
		return &EvalResult{DType: "int32", Shape: shapeOf(a.Shape()), Values: a.Values()}, nil
	case *array.Array[float64]:
		return &EvalResult{DType: "float64", Shape: shapeOf(a.Shape()), Values: a.Values()}, nil
	case *array.Array[*geovec.Geometry]:
		counts, err := ufunc.GetNumCoordinates.Call(ctx, a)
		if err != nil {
			return nil, err
		}
		n := counts.Values()
		summaries := make([]GeometrySummary, 0, a.Size())
		for i, g := range a.Values() {
			summaries = append(summaries, GeometrySummary{
				Type:        g.TypeID().String(),
				HasZ:        g.HasZ(),
				Coordinates: n[i],
			})
		}
		return &EvalResult{DType: "geometry", Shape: shapeOf(a.Shape()), Values: summaries}, nil
	default:
		return nil, fmt.Errorf("unexpected result %T", res)
	}
}
