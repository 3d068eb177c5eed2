package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openmetab/keggmatch/internal/domain/compound"
)

// matchOutput is the printable form of a single match.
type matchOutput struct {
	Query  compound.Query       `json:"query"`
	Result compound.MatchResult `json:"result"`
}

func (o matchOutput) String() string {
	switch o.Result.Status {
	case compound.StatusNoMatch:
		return fmt.Sprintf("%s (%s): no match", o.Query.Name, o.Query.Formula)
	case compound.StatusError:
		return fmt.Sprintf("%s (%s): error: %s", o.Query.Name, o.Query.Formula, o.Result.Err)
	default:
		return fmt.Sprintf("%s (%s): %s %q similarity=%.4f [%s]",
			o.Query.Name, o.Query.Formula,
			o.Result.KEGGID, o.Result.KEGGName, *o.Result.Similarity, o.Result.Status)
	}
}

func (o matchOutput) TableHeaders() []string {
	return []string{"NAME", "FORMULA", "KEGG_ID", "KEGG_NAME", "SIMILARITY", "STATUS"}
}

func (o matchOutput) TableRows() [][]string {
	sim := ""
	if o.Result.Similarity != nil {
		sim = strconv.FormatFloat(*o.Result.Similarity, 'f', 4, 64)
	}
	return [][]string{{
		o.Query.Name, o.Query.Formula,
		o.Result.KEGGID, o.Result.KEGGName, sim, o.Result.Status.String(),
	}}
}

// NewMatchCmd creates the "match" subcommand: resolve a single compound.
func NewMatchCmd() *cobra.Command {
	var (
		name      string
		formula   string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a single compound name and formula against KEGG",
		Example: `  keggmatch match --name "D-Glucose" --formula C6H12O6
  keggmatch match --name Cholesterol --formula C27H46O --threshold 0.9 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			svc, err := buildService(cliCtx, threshold)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			q := compound.Query{Name: name, Formula: formula}
			res := svc.Match(ctx, q)

			if err := PrintResult(cmd, matchOutput{Query: q, Result: res}); err != nil {
				return err
			}
			if res.Status == compound.StatusError {
				return fmt.Errorf("match failed: %s", res.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "compound name to match")
	cmd.Flags().StringVarP(&formula, "formula", "f", "", "molecular formula (required)")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "auto-accept similarity threshold (default from config)")
	_ = cmd.MarkFlagRequired("formula")

	return cmd
}
