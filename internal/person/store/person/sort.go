package person

import (
	"sort"
	"strings"

	"govinda/internal/person/models"
	"govinda/pkg/platform/paging"
)

// Sort keys accepted by List and Search.
const (
	SortLastName    = "last_name"
	SortFirstName   = "first_name"
	SortDateOfBirth = "date_of_birth"
	SortCreatedAt   = "created_at"
)

// SortKeys lists the accepted sort_by values.
var SortKeys = []string{SortLastName, SortFirstName, SortDateOfBirth, SortCreatedAt}

var sortColumns = map[string]string{
	SortLastName:    "last_name",
	SortFirstName:   "first_name",
	SortDateOfBirth: "date_of_birth",
	SortCreatedAt:   "created_at",
}

func orderBy(req paging.Request) string {
	col, ok := sortColumns[req.SortBy]
	if !ok {
		col = sortColumns[SortLastName]
	}
	dir := "ASC"
	if req.SortDesc {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

func sortPersons(persons []*models.Person, req paging.Request) {
	less := func(a, b *models.Person) int {
		switch req.SortBy {
		case SortFirstName:
			return strings.Compare(a.FirstName, b.FirstName)
		case SortDateOfBirth:
			return a.DateOfBirth.Compare(b.DateOfBirth)
		case SortCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return strings.Compare(a.LastName, b.LastName)
		}
	}
	sort.SliceStable(persons, func(i, j int) bool {
		c := less(persons[i], persons[j])
		if c == 0 {
			return persons[i].ID.String() < persons[j].ID.String()
		}
		if req.SortDesc {
			return c > 0
		}
		return c < 0
	})
}
