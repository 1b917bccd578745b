package cmd

import (
	"github.com/spf13/cobra"

	"emsctl/internal/client"
	"emsctl/internal/formatting"
)

type employeeFlags struct {
	user       int
	name       string
	department string
	address    string
	phone      string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.user, "user", 0, "ID of the account the profile belongs to")
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.department, "department", "", "Department")
	cmd.Flags().StringVar(&f.address, "address", "", "Postal address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
}

func (f *employeeFlags) input() client.EmployeeInput {
	return client.EmployeeInput{
		UserID:     f.user,
		Name:       f.name,
		Department: f.department,
		Address:    f.address,
		Phone:      f.phone,
	}
}

// newEmployeesCmd creates the employees command group.
func newEmployeesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "Manage employee profiles",
		Long: `Manage employee profiles.

Administrators manage every profile; employees see and edit their own.

Examples:
  emsctl employees list -o wide
  emsctl employees create --user 3 --name "Jane Doe" --department Sales
  emsctl employees update 3 --phone 555-0100
  emsctl employees delete 3`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List employee profiles",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			employees, err := s.client.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}
			return formatting.RenderTable(s.out, employeeTable(employees), s.output)
		}),
	})

	create := &employeeFlags{}
	createCmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create an employee profile",
		Args:    cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, args []string) error {
			s, err := opts.openRestored(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			employee, err := s.client.CreateEmployee(cmd.Context(), create.input())
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, employeeFields(employee), employee, s.output)
		}),
	}
	create.register(createCmd)
	_ = createCmd.MarkFlagRequired("name")
	cmd.AddCommand(createCmd)

	update := &employeeFlags{}
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee profile",
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

			employee, err := s.client.UpdateEmployee(cmd.Context(), id, update.input())
			if err != nil {
				return err
			}
			return formatting.RenderFields(s.out, employeeFields(employee), employee, s.output)
		}),
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee profile",
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

			if err := s.client.DeleteEmployee(cmd.Context(), id); err != nil {
				return err
			}
			s.notify("Deleted employee profile %d", id)
			return nil
		}),
	})

	return cmd
}
