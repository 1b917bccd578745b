package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"emsctl/internal/client"
	"emsctl/internal/formatting"
)

type performanceFlags struct {
	employee int
	task     string
	rating   int
	remarks  string
	date     string
}

func (f *performanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.employee, "employee", 0, "Employee ID")
	cmd.Flags().StringVar(&f.task, "task", "", "Reviewed task")
	cmd.Flags().IntVar(&f.rating, "rating", 0, "Rating from 1 to 5")
	cmd.Flags().StringVar(&f.remarks, "remarks", "", "Reviewer remarks")
	cmd.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD")
}

// input builds the request from the flags the user actually set.
func (f *performanceFlags) input(cmd *cobra.Command) (client.PerformanceInput, error) {
	in := client.PerformanceInput{Task: f.task, Remarks: f.remarks, Date: f.date}
	if cmd.Flags().Changed("employee") {
		employee := f.employee
		in.EmployeeID = &employee
	}
	if cmd.Flags().Changed("rating") {
		if f.rating < 1 || f.rating > 5 {
			return client.PerformanceInput{}, fmt.Errorf("invalid rating %d: must be between 1 and 5", f.rating)
		}
		rating := f.rating
		in.Rating = &rating
	}
	return in, nil
}

// newPerformanceCmd creates the performance command group.
func newPerformanceCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "performance",
		Aliases: []string{"perf"},
		Short:   "List and review performance",
		Long: `List and review performance entries.

Administrators see and write everyone's reviews; employees see their own.

Examples:
  emsctl performance list
  emsctl performance get 5
  emsctl performance latest 3
  emsctl performance create --employee 3 --task "Quarterly review" --rating 4
  emsctl performance update 5 --remarks "Solid work"
  emsctl performance delete 5`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List performance entries",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.client.ListPerformance(cmd.Context())
			if err != nil {
				return err
			}
			return formatting.RenderTable(s.out, performanceTable(entries), s.output)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one performance entry",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := s.client.GetPerformance(cmd.Context(), id)
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, performanceFields(entry), entry, s.output)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "latest EMPLOYEE_ID",
		Short: "Summarize an employee's latest review",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			metrics, err := s.client.LatestPerformance(cmd.Context(), id)
			if err != nil {
				return err
			}
			return formatting.RenderTable(s.out, metricsTable(metrics), s.output)
		}),
	})

	create := &performanceFlags{}
	createCmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Record a performance review",
		Args:    cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			in, err := create.input(cmd)
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := s.client.CreatePerformance(cmd.Context(), in)
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, performanceFields(entry), entry, s.output)
		}),
	}
	create.register(createCmd)
	_ = createCmd.MarkFlagRequired("employee")
	_ = createCmd.MarkFlagRequired("task")
	cmd.AddCommand(createCmd)

	update := &performanceFlags{}
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a performance review",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := update.input(cmd)
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := s.client.UpdatePerformance(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, performanceFields(entry), entry, s.output)
		}),
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a performance review",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.client.DeletePerformance(cmd.Context(), id); err != nil {
				return err
			}
			s.notify("Deleted performance entry %d", id)
			return nil
		}),
	})

	return cmd
}
