package client

import (
	"context"
	"net/http"

	"emsctl/internal/endpoint"
)

// list, create, update and remove run a CRUD operation against the
// collection that kind resolves to for the current role.

func (c *Client) list(ctx context.Context, kind endpoint.Kind, out interface{}) error {
	path, err := c.resolve(kind)
	if err != nil {
		return err
	}
	return c.do(ctx, c.api, http.MethodGet, path, nil, out)
}

func (c *Client) get(ctx context.Context, kind endpoint.Kind, id int, out interface{}) error {
	path, err := c.resolveItem(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, c.api, http.MethodGet, path, nil, out)
}

func (c *Client) create(ctx context.Context, kind endpoint.Kind, in, out interface{}) error {
	path, err := c.resolve(kind)
	if err != nil {
		return err
	}
	return c.do(ctx, c.api, http.MethodPost, path, in, out)
}

func (c *Client) update(ctx context.Context, kind endpoint.Kind, id int, in, out interface{}) error {
	path, err := c.resolveItem(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, c.api, http.MethodPut, path, in, out)
}

func (c *Client) remove(ctx context.Context, kind endpoint.Kind, id int) error {
	path, err := c.resolveItem(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, c.api, http.MethodDelete, path, nil, nil)
}

// ListAttendance lists attendance records: every employee's for
// administrators, the caller's own otherwise.
func (c *Client) ListAttendance(ctx context.Context) ([]Attendance, error) {
	var out []Attendance
	if err := c.list(ctx, endpoint.KindAttendance, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAttendance(ctx context.Context, in AttendanceInput) (*Attendance, error) {
	var out Attendance
	if err := c.create(ctx, endpoint.KindAttendance, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAttendance(ctx context.Context, id int, in AttendanceInput) (*Attendance, error) {
	var out Attendance
	if err := c.update(ctx, endpoint.KindAttendance, id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAttendance(ctx context.Context, id int) error {
	return c.remove(ctx, endpoint.KindAttendance, id)
}

// MarkPresent records today's attendance as present for the caller.
func (c *Client) MarkPresent(ctx context.Context) (*Attendance, error) {
	if _, err := c.resolve(endpoint.KindAttendance); err != nil {
		return nil, err
	}
	var out Attendance
	if err := c.do(ctx, c.api, http.MethodPost, endpoint.MarkPresentPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPerformance lists performance entries: everyone's for
// administrators, the caller's own otherwise.
func (c *Client) ListPerformance(ctx context.Context) ([]Performance, error) {
	var out []Performance
	if err := c.list(ctx, endpoint.KindPerformance, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPerformance(ctx context.Context, id int) (*Performance, error) {
	var out Performance
	if err := c.get(ctx, endpoint.KindPerformance, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePerformance(ctx context.Context, in PerformanceInput) (*Performance, error) {
	var out Performance
	if err := c.create(ctx, endpoint.KindPerformance, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePerformance(ctx context.Context, id int, in PerformanceInput) (*Performance, error) {
	var out Performance
	if err := c.update(ctx, endpoint.KindPerformance, id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePerformance(ctx context.Context, id int) error {
	return c.remove(ctx, endpoint.KindPerformance, id)
}

// LatestPerformance returns the chart summary of an employee's most recent
// performance entry. The backend answers with zero values when there is
// none.
func (c *Client) LatestPerformance(ctx context.Context, employeeID int) ([]Metric, error) {
	if _, err := c.resolve(endpoint.KindPerformance); err != nil {
		return nil, err
	}
	var out []Metric
	if err := c.do(ctx, c.api, http.MethodGet, endpoint.LatestPerformancePath(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEmployees lists employee profiles: all of them for administrators,
// the caller's own otherwise.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.list(ctx, endpoint.KindEmployeeProfile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var out Employee
	if err := c.create(ctx, endpoint.KindEmployeeProfile, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int, in EmployeeInput) (*Employee, error) {
	var out Employee
	if err := c.update(ctx, endpoint.KindEmployeeProfile, id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	return c.remove(ctx, endpoint.KindEmployeeProfile, id)
}

// ListUsers lists all accounts. Only administrators have a route for it.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.list(ctx, endpoint.KindUserList, &out); err != nil {
		return nil, err
	}
	return out, nil
}
