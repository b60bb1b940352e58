package model

import (
	"fmt"
	"net/url"
)

// Kind describes one moderated resource: its remote endpoint set and the
// nouns the console uses when talking about it.
type Kind struct {
	// Name is the path segment shared by the remote API and console routes.
	Name string
	// Title is the plural heading of list pages.
	Title string
	// ProfileSegment is the remote path segment used to read one record.
	ProfileSegment string
}

var (
	UserKind     = Kind{Name: "user", Title: "Users", ProfileSegment: "profile"}
	EmployeeKind = Kind{Name: "employee", Title: "Employees", ProfileSegment: "employee"}

	// OperatorKind attributes sign-in and logout in the audit trail.
	OperatorKind = Kind{Name: "operator", Title: "Operators"}
)

func (k Kind) CollectionPath() string {
	return "/" + k.Name
}

func (k Kind) ItemPath(id int) string {
	return fmt.Sprintf("/%s/%d", k.Name, id)
}

func (k Kind) ProfilePath(id int) string {
	return fmt.Sprintf("/%s/%d", k.ProfileSegment, id)
}

func (k Kind) BanPath(id int) string {
	return fmt.Sprintf("/%s/ban/%d", k.Name, id)
}

func (k Kind) UnbanPath(id int) string {
	return fmt.Sprintf("/%s/unban/%d", k.Name, id)
}

func (k Kind) ImagePath(file string) string {
	return fmt.Sprintf("/%s/image/%s", k.Name, url.PathEscape(file))
}

// ConsolePath is the list page of this kind in the console.
func (k Kind) ConsolePath() string {
	return "/admin/" + k.Name
}

// MediaPath is the console URL that proxies one of this kind's images.
func (k Kind) MediaPath(file string) string {
	if file == "" {
		return ""
	}
	return "/media/" + k.Name + "/" + url.PathEscape(file)
}
