package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/validator"
)

const defaultSeedCount = 10

// SeedResult reports how many generated employees were stored.
type SeedResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add randomly generated employees",
		Long: `Generate employees with fake names and addresses and submit them one by one.

Generated employees that are rejected (for instance duplicates) are skipped and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(rootOpts, count, cmd)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultSeedCount, "number of employees to generate")

	return cmd
}

func runSeed(opts *RootOptions, count int, cmd *cobra.Command) error {
	if count < 0 {
		return fmt.Errorf("invalid --count %d: must not be negative", count)
	}

	sess, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	generator := faker.New()
	var result SeedResult

	for range count {
		_, err = sess.staff.Submit(cmd.Context(), fakeEmployee(generator))
		var verr *validator.Error
		switch {
		case err == nil:
			result.Added++
		case errors.As(err, &verr):
			result.Skipped++
		default:
			return fmt.Errorf("seeding stopped after %d employees: %w", result.Added, err)
		}
	}

	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d employees (%d skipped)\n", result.Added, result.Skipped)
	return err
}

// fakeEmployee returns an employee that passes validation unless it duplicates an existing one.
func fakeEmployee(generator faker.Faker) models.Employee {
	person := generator.Person()
	address := generator.Address()

	birth := time.Date(generator.IntBetween(1950, 2000), time.Month(generator.IntBetween(1, 12)),
		generator.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)
	start := time.Date(generator.IntBetween(birth.Year()+validator.MinimumAge+1, 2024),
		time.Month(generator.IntBetween(1, 12)), generator.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)

	return models.Employee{
		FirstName:   person.FirstName(),
		LastName:    person.LastName(),
		DateOfBirth: birth.Format(models.DateLayout),
		StartDate:   start.Format(models.DateLayout),
		Street:      address.StreetAddress(),
		City:        address.City(),
		State:       models.States[generator.IntBetween(0, len(models.States)-1)].Name,
		ZipCode:     address.PostCode(),
		Department:  models.Departments[generator.IntBetween(0, len(models.Departments)-1)],
	}
}
