// File: internal/dto/search_form.go
package dto

// SearchForm is the directory-search form on the individual report page.
// The term may be empty; an empty search returns no results.
type SearchForm struct {
	SearchTerm string `form:"search_term"`
}
