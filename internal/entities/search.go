package entities

// SearchResult is one candidate book returned by the catalog search.
type SearchResult struct {
	Key              string   `json:"key,omitempty"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors,omitempty"`
	FirstPublishYear int      `json:"firstPublishYear,omitempty"`
	CoverID          string   `json:"coverId,omitempty"`
	Subjects         []string `json:"subjects,omitempty"`
}

// AuthorResult is one candidate author returned by the catalog author search.
type AuthorResult struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"`
	TopWork   string `json:"topWork,omitempty"`
	WorkCount int    `json:"workCount,omitempty"`
}
