package cli

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/tableview"
)

// ListOptions holds the view criteria of the list command.
type ListOptions struct {
	Filter string
	Value  string
	Sort   string
	Desc   bool
	Page   int // 1-based
	Size   int
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Long: `List stored employees through the table view: an optional case-insensitive
substring filter on one field, an optional sort on one field, then one page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "field to filter on, e.g. department")
	cmd.Flags().StringVar(&opts.Value, "value", "", "substring the filter field must contain")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "field to sort by")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort in descending order")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "rows per page (10, 20, 25, 30, 40 or 50; defaults to the configured size)")

	return cmd
}

// viewState turns the flags into a table view state.
func (o *ListOptions) viewState(defaultPageSize int) (tableview.ViewState, error) {
	state := tableview.NewViewState(defaultPageSize)

	if o.Filter != "" {
		if err := state.SelectFilter(o.Filter); err != nil {
			return state, fmt.Errorf("invalid --filter: %w", err)
		}
		state.SetFilterValue(o.Value)
	}

	if o.Sort != "" {
		if err := state.ToggleSort(o.Sort); err != nil {
			return state, fmt.Errorf("invalid --sort: %w", err)
		}
		if o.Desc {
			_ = state.ToggleSort(o.Sort)
		}
	}

	if o.Size != 0 {
		state.SetPageSize(o.Size)
	}
	state.SetPage(o.Page - 1)

	return state, nil
}

func runList(rootOpts *RootOptions, opts *ListOptions, cmd *cobra.Command) error {
	sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := opts.viewState(sess.cfg.Table.PageSize)
	if err != nil {
		return err
	}

	page := sess.staff.List(state.Query())

	if rootOpts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(page)
	}

	consoleTable := tablewriter.NewWriter(cmd.OutOrStdout())

	header := make([]string, len(models.Fields))
	for i, field := range models.Fields {
		header[i] = models.FieldLabels[field]
	}
	consoleTable.SetHeader(header)

	for _, employee := range page.Rows {
		row := make([]string, len(models.Fields))
		for i, field := range models.Fields {
			row[i] = employee.Display(field)
		}
		consoleTable.Append(row)
	}

	consoleTable.Render()

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d of %d entries)\n",
		page.PageIndex+1, page.PageCount, page.TotalRows, page.TotalRecords)

	return err
}
