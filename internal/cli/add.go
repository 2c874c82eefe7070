package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/services/employees"
	"github.com/UnknownOlympus/hrnet/internal/validator"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var candidate models.Employee

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one employee",
		Long: `Add one employee through the same validation as the web form.

On rejection the single validation message is printed and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(rootOpts, candidate, cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&candidate.FirstName, "first-name", "", "first name")
	flags.StringVar(&candidate.LastName, "last-name", "", "last name")
	flags.StringVar(&candidate.DateOfBirth, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	flags.StringVar(&candidate.StartDate, "start-date", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&candidate.Street, "street", "", "street address")
	flags.StringVar(&candidate.City, "city", "", "city")
	flags.StringVar(&candidate.State, "state", "", "state name, e.g. California")
	flags.StringVar(&candidate.ZipCode, "zip-code", "", "zip code")
	flags.StringVar(&candidate.Department, "department", "", "department, e.g. Sales")

	return cmd
}

func runAdd(opts *RootOptions, candidate models.Employee, cmd *cobra.Command) error {
	sess, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	employee, err := sess.staff.Submit(cmd.Context(), candidate)
	if opts.Format != "json" {
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), employees.SuccessMessage)
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	if err != nil {
		if verr, ok := validator.AsError(err); ok {
			if encErr := encoder.Encode(verr); encErr != nil {
				return encErr
			}
			return ErrRejected
		}
		return err
	}

	return encoder.Encode(employee)
}
