package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"emsctl/internal/client"
	"emsctl/internal/formatting"
)

// parseID parses a record ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q: must be a positive integer", arg)
	}
	return id, nil
}

type attendanceFlags struct {
	employee int
	date     string
	status   string
}

func (f *attendanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.employee, "employee", 0, "Employee ID (administrators only)")
	cmd.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.status, "status", "", "present or absent")
}

func (f *attendanceFlags) input() (client.AttendanceInput, error) {
	switch f.status {
	case "", client.AttendancePresent, client.AttendanceAbsent:
	default:
		return client.AttendanceInput{}, fmt.Errorf("invalid status %q: must be %s or %s", f.status, client.AttendancePresent, client.AttendanceAbsent)
	}
	return client.AttendanceInput{EmployeeID: f.employee, Date: f.date, Status: f.status}, nil
}

// newAttendanceCmd creates the attendance command group.
func newAttendanceCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "List and record attendance",
		Long: `List and record attendance.

Administrators work on every employee's records; employees see and
record their own.

Examples:
  emsctl attendance list
  emsctl attendance mark-present
  emsctl attendance create --employee 3 --date 2026-10-18 --status present
  emsctl attendance update 7 --status absent
  emsctl attendance delete 7`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.client.ListAttendance(cmd.Context())
			if err != nil {
				return err
			}
			return formatting.RenderTable(s.out, attendanceTable(records), s.output)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mark-present",
		Short: "Record today's attendance as present",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.client.MarkPresent(cmd.Context())
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, attendanceFields(record), record, s.output)
		}),
	})

	create := &attendanceFlags{}
	createCmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create an attendance record",
		Args:    cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			in, err := create.input()
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.client.CreateAttendance(cmd.Context(), in)
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, attendanceFields(record), record, s.output)
		}),
	}
	create.register(createCmd)
	cmd.AddCommand(createCmd)

	update := &attendanceFlags{}
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := update.input()
			if err != nil {
				return err
			}
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.client.UpdateAttendance(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, attendanceFields(record), record, s.output)
		}),
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an attendance record",
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

			if err := s.client.DeleteAttendance(cmd.Context(), id); err != nil {
				return err
			}
			s.notify("Deleted attendance record %d", id)
			return nil
		}),
	})

	return cmd
}
