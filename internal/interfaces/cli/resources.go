package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeScope/pkg/client"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// listFlags registers --skip and --limit on cmd.
func listFlags(cmd *cobra.Command) *client.ListOptions {
	opts := &client.ListOptions{}
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "rows to skip")
	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "rows to return (at most 1000)")
	return opts
}

// apiRun adapts fn into a RunE that supplies the client and a bounded
// context, then prints whatever fn returns.
func apiRun(fn func(ctx context.Context, c *client.Client, args []string) (interface{}, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cliCtx, err := GetCLIContext(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd, cliCtx)
		defer cancel()

		out, err := fn(ctx, cliCtx.Client, args)
		if err != nil {
			return err
		}
		return PrintResult(cmd, out)
	}
}

func newCompaniesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Browse stored companies",
	}

	list := &cobra.Command{Use: "list", Short: "List companies", Args: cobra.NoArgs}
	page := listFlags(list)
	list.RunE = apiRun(func(ctx context.Context, c *client.Client, _ []string) (interface{}, error) {
		res, err := c.Companies().List(ctx, page)
		if err != nil {
			return nil, err
		}
		return companyList{res}, nil
	})

	get := &cobra.Command{
		Use:   "get <id-or-name>",
		Short: "Show one company by id or exact name",
		Args:  cobra.ExactArgs(1),
		RunE: apiRun(func(ctx context.Context, c *client.Client, args []string) (interface{}, error) {
			res, err := c.Companies().Get(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return companyView{res}, nil
		}),
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newPatentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patents",
		Aliases: []string{"patent"},
		Short:   "Browse stored patents",
	}

	list := &cobra.Command{Use: "list", Short: "List patents", Args: cobra.NoArgs}
	page := listFlags(list)
	list.RunE = apiRun(func(ctx context.Context, c *client.Client, _ []string) (interface{}, error) {
		res, err := c.Patents().List(ctx, page)
		if err != nil {
			return nil, err
		}
		return patentList{res}, nil
	})

	get := &cobra.Command{
		Use:   "get <id-or-publication-number>",
		Short: "Show one patent by id or publication number",
		Args:  cobra.ExactArgs(1),
		RunE: apiRun(func(ctx context.Context, c *client.Client, args []string) (interface{}, error) {
			res, err := c.Patents().Get(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return patentView{res}, nil
		}),
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newAnalysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analysis",
		Aliases: []string{"analyses"},
		Short:   "Browse stored infringement analyses",
	}

	list := &cobra.Command{Use: "list", Short: "List analyses", Args: cobra.NoArgs}
	page := listFlags(list)
	list.RunE = apiRun(func(ctx context.Context, c *client.Client, _ []string) (interface{}, error) {
		res, err := c.Infringement().List(ctx, page)
		if err != nil {
			return nil, err
		}
		return analysisList{res}, nil
	})

	get := &cobra.Command{
		Use:   "get <analysis-id>",
		Short: "Show one analysis",
		Args:  cobra.ExactArgs(1),
		RunE: apiRun(func(ctx context.Context, c *client.Client, args []string) (interface{}, error) {
			res, err := c.Infringement().Get(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return analysisView{res}, nil
		}),
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newCheckCmd() *cobra.Command {
	var patentID, companyName string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run an infringement check of a company against a patent",
		Long: "Asks the server to compare the company's products with the patent's claims.\n" +
			"The result is stored and printed.  The call waits on the language model, so\n" +
			"raise --timeout for slow providers.",
		Args: cobra.NoArgs,
		RunE: apiRun(func(ctx context.Context, c *client.Client, _ []string) (interface{}, error) {
			if strings.TrimSpace(patentID) == "" || strings.TrimSpace(companyName) == "" {
				return nil, errors.New(errors.ErrCodeValidation, "--patent and --company are required")
			}
			res, err := c.Infringement().Check(ctx, patentID, companyName)
			if err != nil {
				return nil, err
			}
			return analysisView{res}, nil
		}),
	}
	cmd.Flags().StringVarP(&patentID, "patent", "p", "", "patent id or publication number")
	cmd.Flags().StringVar(&companyName, "company", "", "company id or exact name")
	return cmd
}

//Personal.AI order the ending
