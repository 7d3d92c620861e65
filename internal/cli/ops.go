package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/geovec/ufunc"
)

// OpInfo describes one registered ufunc.
type OpInfo struct {
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	NIn       int    `json:"nin" yaml:"nin"`
	Types     string `json:"types" yaml:"types"`
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// OpList is the result of the ops command.
type OpList []OpInfo

// WriteText renders the list as an aligned table.
func (l OpList) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tNIN\tTYPES\tSIGNATURE")
	for _, op := range l {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", op.Name, op.Kind, op.NIn, op.Types, op.Signature)
	}
	return tw.Flush()
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:           "ops",
		Short:         "List the registered ufuncs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := listOps(kind)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --kind", err)
			}
			return newFormatter(rootOpts, cmd).Success(list)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list ufuncs of this kind, e.g. unary_predicate")

	return cmd
}

func listOps(kind string) (OpList, error) {
	var filter *ufunc.Kind
	if kind != "" {
		k, err := ufunc.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		filter = &k
	}

	list := OpList{}
	for _, u := range ufunc.All() {
		if filter != nil && u.Kind() != *filter {
			continue
		}
		list = append(list, OpInfo{
			Name:      u.Name(),
			Kind:      u.Kind().String(),
			NIn:       u.NIn(),
			Types:     u.Types(),
			Signature: u.Signature(),
		})
	}
	return list, nil
}
