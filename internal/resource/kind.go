package resource

import (
	"strings"

	"github.com/cm-academy/cm-academy-api/internal/repository"
)

// Kind describes one resource collection and how it is exposed over HTTP.
type Kind struct {
	Name       string // route segment for single-record routes, e.g. "Notice"
	Plural     string // route segment for listing, e.g. "Notices"
	Label      string // human readable, e.g. "Breaking News"
	Collection string
	Sort       *repository.Sort
	Deletable  bool
}

var (
	BreakingNews = Kind{
		Name:       "BreakingNews",
		Plural:     "BreakingNews",
		Label:      "Breaking News",
		Collection: "breakingNewsCollection",
		Deletable:  true,
	}
	ClassLecture = Kind{
		Name:       "ClassLecture",
		Plural:     "ClassLectures",
		Label:      "Class Lecture",
		Collection: "classLectureCollection",
		Deletable:  true,
	}
	// Notices list newest first by their timestamp attribute. The attribute
	// is not required; records without it sort last.
	Notice = Kind{
		Name:       "Notice",
		Plural:     "Notices",
		Label:      "Notice",
		Collection: "noticeCollection",
		Sort:       &repository.Sort{Field: "timestamp", Descending: true},
		Deletable:  true,
	}
	Employee = Kind{
		Name:       "Employee",
		Plural:     "Employees",
		Label:      "Employee",
		Collection: "employeeCollection",
	}
)

// Kinds lists every resource the service exposes.
func Kinds() []Kind {
	return []Kind{BreakingNews, ClassLecture, Notice, Employee}
}

func (k Kind) AddedMessage() string    { return k.Label + " added successfully" }
func (k Kind) DeletedMessage() string  { return k.Label + " deleted successfully" }
func (k Kind) NotFoundMessage() string { return k.Label + " not found" }
func (k Kind) InvalidIDMessage() string {
	return "Invalid " + k.Label + " id"
}

func (k Kind) FetchErrorMessage() string {
	return "Error fetching " + strings.ToLower(k.pluralLabel())
}

func (k Kind) DeleteErrorMessage() string {
	return "An error occurred while deleting " + strings.ToLower(k.Label)
}

func (k Kind) pluralLabel() string {
	if k.Name == k.Plural {
		return k.Label
	}
	return k.Label + "s"
}
