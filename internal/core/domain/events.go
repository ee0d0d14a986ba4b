package domain

// Event is a message emitted asynchronously by the search and hydration services.
type Event interface {
	event()
}

// SearchCompleted carries the result of the latest live search.
type SearchCompleted struct {
	Results *ResultSet
}

// SearchFailed reports that the latest live search could not complete.
// The previous ResultSet stays current.
type SearchFailed struct {
	SearchID string
	Request  SearchRequest
	Err      error
}

// CrateHydrated reports that a record in the current ResultSet was enriched in place.
type CrateHydrated struct {
	SearchID string
	CrateID  string
	Detail   *CrateDetail
}

// EnvironmentRefreshed reports that the project or installed binaries changed
// and the current ResultSet was re-annotated.
type EnvironmentRefreshed struct {
	Environment *Environment
}

func (SearchCompleted) event()      {}
func (SearchFailed) event()         {}
func (CrateHydrated) event()        {}
func (EnvironmentRefreshed) event() {}
