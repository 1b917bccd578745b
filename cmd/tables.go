package cmd

import (
	"strconv"
	"time"

	"emsctl/internal/client"
	"emsctl/internal/formatting"
	"emsctl/internal/session"
)

func itoa(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

func employeeName(e *client.Employee) string {
	return e.DisplayName()
}

func employeeDepartment(e *client.Employee) string {
	if e == nil {
		return ""
	}
	return e.Department
}

func attendanceTable(records []client.Attendance) formatting.Table {
	t := formatting.Table{
		Resource:    "attendance records",
		Columns:     []string{"ID", "Date", "Status"},
		WideColumns: []string{"Employee", "Department"},
		Data:        records,
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			itoa(r.ID), r.Date, r.Status,
			employeeName(r.Employee), employeeDepartment(r.Employee),
		})
	}
	return t
}

func attendanceFields(r *client.Attendance) []formatting.Field {
	return []formatting.Field{
		{Name: "ID", Value: itoa(r.ID)},
		{Name: "Date", Value: r.Date},
		{Name: "Status", Value: r.Status},
		{Name: "Employee", Value: employeeName(r.Employee)},
	}
}

func rating(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}

func performanceTable(entries []client.Performance) formatting.Table {
	t := formatting.Table{
		Resource:    "performance entries",
		Columns:     []string{"ID", "Date", "Task", "Rating"},
		WideColumns: []string{"Employee", "Remarks"},
		Data:        entries,
	}
	for _, p := range entries {
		t.Rows = append(t.Rows, []string{
			itoa(p.ID), p.Date, p.Task, rating(p.Rating),
			employeeName(p.Employee), p.Remarks,
		})
	}
	return t
}

func performanceFields(p *client.Performance) []formatting.Field {
	return []formatting.Field{
		{Name: "ID", Value: itoa(p.ID)},
		{Name: "Date", Value: p.Date},
		{Name: "Task", Value: p.Task},
		{Name: "Rating", Value: rating(p.Rating)},
		{Name: "Remarks", Value: p.Remarks},
		{Name: "Employee", Value: employeeName(p.Employee)},
	}
}

func metricsTable(metrics []client.Metric) formatting.Table {
	t := formatting.Table{
		Resource: "performance metrics",
		Columns:  []string{"Metric", "Value"},
		Data:     metrics,
	}
	for _, m := range metrics {
		t.Rows = append(t.Rows, []string{m.Name, strconv.Itoa(m.Value)})
	}
	return t
}

func employeeTable(employees []client.Employee) formatting.Table {
	t := formatting.Table{
		Resource:    "employees",
		Columns:     []string{"ID", "Name", "Department"},
		WideColumns: []string{"Username", "Email", "Phone", "Address"},
		Data:        employees,
	}
	for i := range employees {
		e := &employees[i]
		var username, email string
		if e.User != nil {
			username, email = e.User.Username, e.User.Email
		}
		t.Rows = append(t.Rows, []string{
			itoa(e.ID), e.DisplayName(), e.Department,
			username, email, e.Phone, e.Address,
		})
	}
	return t
}

func employeeFields(e *client.Employee) []formatting.Field {
	fields := []formatting.Field{
		{Name: "ID", Value: itoa(e.ID)},
		{Name: "Name", Value: e.DisplayName()},
		{Name: "Department", Value: e.Department},
		{Name: "Phone", Value: e.Phone},
		{Name: "Address", Value: e.Address},
	}
	if e.User != nil {
		fields = append(fields, formatting.Field{Name: "Username", Value: e.User.Username})
	}
	return fields
}

func userTable(users []client.User) formatting.Table {
	t := formatting.Table{
		Resource:    "users",
		Columns:     []string{"ID", "Username", "Email"},
		WideColumns: []string{"First Name", "Last Name"},
		Data:        users,
	}
	for _, u := range users {
		t.Rows = append(t.Rows, []string{itoa(u.ID), u.Username, u.Email, u.FirstName, u.LastName})
	}
	return t
}

func profileFields(p *session.Profile) []formatting.Field {
	return []formatting.Field{
		{Name: "Name", Value: p.DisplayName()},
		{Name: "Username", Value: p.Username},
		{Name: "Email", Value: p.Email},
		{Name: "Role", Value: p.Role.String()},
		{Name: "User ID", Value: itoa(p.ID)},
		{Name: "Department", Value: p.Department},
		{Name: "Phone", Value: p.Phone},
		{Name: "Address", Value: p.Address},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
