package schema

// CategoryTable represents the 'catalog.category' table
type CategoryTable struct {
	Table string
	ID    string
	Name  string
}

// Category is the schema definition for catalog.category
var Category = CategoryTable{
	Table: "catalog.category",
	ID:    "id",
	Name:  "name",
}

func (t CategoryTable) Columns() []string {
	return []string{t.ID, t.Name}
}
