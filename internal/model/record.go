package model

// ActiveFlag mirrors the remote isActive column: 1 is a normal record, 0 a banned one.
type ActiveFlag int

const (
	FlagBanned ActiveFlag = 0
	FlagActive ActiveFlag = 1
)

// Banned reports whether the record is suspended.
func (f ActiveFlag) Banned() bool {
	return f == FlagBanned
}

// Record is the contract shared by every moderated entity shape.
// T is the concrete record type so WithFlag can return a patched copy.
type Record[T any] interface {
	RecordID() int
	Flag() ActiveFlag
	WithFlag(flag ActiveFlag) T
	Summary() Summary
	FormFields() []Field
	DetailFields() []Field
	Reports() []ReportEntry
	Image() string
}

// Summary holds the columns rendered in list tables.
type Summary struct {
	Username  string
	Firstname string
	Lastname  string
	Email     string
}

// Field is one labelled value of a record, used by forms and detail pages.
type Field struct {
	Name     string
	Label    string
	Value    string
	Required bool
}

// ReportEntry is one prior complaint attached to a record.
type ReportEntry struct {
	ReporterID int    `json:"reporterID"`
	ReportType string `json:"reportType"`
}

// Actions tells which moderation buttons are enabled for a record.
type Actions struct {
	CanBan   bool
	CanUnban bool
}

// ActionsFor derives ban/unban availability from the active flag.
// Ban is disabled on a banned record, unban on an active one.
func ActionsFor(flag ActiveFlag) Actions {
	return Actions{
		CanBan:   flag != FlagBanned,
		CanUnban: flag != FlagActive,
	}
}

// FieldValues indexes fields by name.
func FieldValues(fields []Field) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Value
	}
	return values
}
