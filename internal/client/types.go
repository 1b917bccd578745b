package client

// Attendance statuses accepted by the backend.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// User is an account as listed by administrators.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Employee is an employee profile record.
type Employee struct {
	ID         int    `json:"id"`
	User       *User  `json:"user,omitempty"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
}

// DisplayName returns the employee's name, falling back to the username.
func (e *Employee) DisplayName() string {
	if e == nil {
		return ""
	}
	if e.Name != "" {
		return e.Name
	}
	if e.User != nil {
		return e.User.Username
	}
	return ""
}

// EmployeeInput creates or updates an employee profile.
type EmployeeInput struct {
	UserID     int    `json:"user_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Attendance is one day's attendance of one employee.
type Attendance struct {
	ID       int       `json:"id"`
	Employee *Employee `json:"employee,omitempty"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`
}

// AttendanceInput creates or updates an attendance record. Employees may
// only record their own attendance; the backend fills in the employee.
type AttendanceInput struct {
	EmployeeID int    `json:"employee_id,omitempty"`
	Date       string `json:"date,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Performance is one performance review entry.
type Performance struct {
	ID       int       `json:"id"`
	Employee *Employee `json:"employee,omitempty"`
	Task     string    `json:"task"`
	Rating   *int      `json:"rating"`
	Remarks  string    `json:"remarks"`
	Date     string    `json:"date"`
}

// PerformanceInput creates or updates a performance entry. Only
// administrators may write performance data.
type PerformanceInput struct {
	EmployeeID *int   `json:"employee_id,omitempty"`
	Task       string `json:"task,omitempty"`
	Rating     *int   `json:"rating,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	Date       string `json:"date,omitempty"`
}

// Metric is one point of the latest-performance summary.
type Metric struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
