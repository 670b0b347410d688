package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams pages and orders a listing. Zero Page or Limit means unbounded.
// SortBy must be a column name chosen by the caller, never raw user input.
type QueryParams struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir string
}
