package model

// Employee is a platform staff member; structurally parallel to User.
type Employee struct {
	EmpID         int           `json:"empID"`
	Username      string        `json:"username"`
	Firstname     string        `json:"firstname"`
	Lastname      string        `json:"lastname"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phonenumber"`
	Gender        string        `json:"gender"`
	ImageFile     string        `json:"imageFile"`
	IsActive      ActiveFlag    `json:"isActive"`
	ReportHistory []ReportEntry `json:"reportHistory"`
}

func (e Employee) RecordID() int    { return e.EmpID }
func (e Employee) Flag() ActiveFlag { return e.IsActive }
func (e Employee) Image() string    { return e.ImageFile }

func (e Employee) WithFlag(flag ActiveFlag) Employee {
	e.IsActive = flag
	return e
}

func (e Employee) Summary() Summary {
	return Summary{Username: e.Username, Firstname: e.Firstname, Lastname: e.Lastname, Email: e.Email}
}

func (e Employee) Reports() []ReportEntry {
	return e.ReportHistory
}

func (e Employee) FormFields() []Field {
	return []Field{
		{Name: "username", Label: "Username", Value: e.Username, Required: true},
		{Name: "firstname", Label: "First name", Value: e.Firstname, Required: true},
		{Name: "lastname", Label: "Last name", Value: e.Lastname, Required: true},
		{Name: "email", Label: "Email", Value: e.Email, Required: true},
		{Name: "phonenumber", Label: "Phone number", Value: e.PhoneNumber},
		{Name: "gender", Label: "Gender", Value: e.Gender},
	}
}

func (e Employee) DetailFields() []Field {
	return []Field{
		{Name: "email", Label: "Email", Value: e.Email},
		{Name: "gender", Label: "Gender", Value: orUnspecified(e.Gender)},
		{Name: "phonenumber", Label: "Phone number", Value: orUnspecified(e.PhoneNumber)},
	}
}

var _ Record[Employee] = Employee{}
