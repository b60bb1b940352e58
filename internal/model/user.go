package model

// User is a platform member as returned by the moderation service.
type User struct {
	UserID        int           `json:"userID"`
	Username      string        `json:"username"`
	Firstname     string        `json:"firstname"`
	Lastname      string        `json:"lastname"`
	Email         string        `json:"email"`
	Home          string        `json:"home"`
	PhoneNumber   string        `json:"phonenumber"`
	ImageFile     string        `json:"imageFile"`
	IsActive      ActiveFlag    `json:"isActive"`
	GenderID      int           `json:"GenderID"`
	ReportType    string        `json:"reportType"`
	ReportHistory []ReportEntry `json:"reportHistory"`
}

func (u User) RecordID() int    { return u.UserID }
func (u User) Flag() ActiveFlag { return u.IsActive }
func (u User) Image() string    { return u.ImageFile }

func (u User) WithFlag(flag ActiveFlag) User {
	u.IsActive = flag
	return u
}

func (u User) Summary() Summary {
	return Summary{Username: u.Username, Firstname: u.Firstname, Lastname: u.Lastname, Email: u.Email}
}

func (u User) Reports() []ReportEntry {
	return u.ReportHistory
}

// FormFields lists the editable fields in submission order.
func (u User) FormFields() []Field {
	return []Field{
		{Name: "username", Label: "Username", Value: u.Username, Required: true},
		{Name: "firstname", Label: "First name", Value: u.Firstname, Required: true},
		{Name: "lastname", Label: "Last name", Value: u.Lastname, Required: true},
		{Name: "email", Label: "Email", Value: u.Email, Required: true},
		{Name: "home", Label: "Address", Value: u.Home},
		{Name: "phonenumber", Label: "Phone number", Value: u.PhoneNumber},
	}
}

func (u User) DetailFields() []Field {
	return []Field{
		{Name: "email", Label: "Email", Value: u.Email},
		{Name: "gender", Label: "Gender", Value: GenderLabel(u.GenderID)},
		{Name: "home", Label: "Address", Value: orUnspecified(u.Home)},
		{Name: "phonenumber", Label: "Phone number", Value: orUnspecified(u.PhoneNumber)},
	}
}

// GenderLabel maps the remote GenderID code to a display label.
func GenderLabel(id int) string {
	switch id {
	case 1:
		return "Male"
	case 2:
		return "Female"
	case 3:
		return "Other"
	default:
		return "-"
	}
}

func orUnspecified(v string) string {
	if v == "" {
		return "Not specified"
	}
	return v
}

var _ Record[User] = User{}
