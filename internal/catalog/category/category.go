package category

// Category represents a genre or grouping that movies can be classified into.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Global field names for validation
const (
	FieldName = "name"
)

// MaxNameLen bounds category names; the original schema used unbounded text
// but user-facing labels past this length are garbage input.
const MaxNameLen = 200
