package schema

// ClassificationTable represents the 'catalog.classification' table
type ClassificationTable struct {
	Table      string
	ID         string
	MovieID    string
	CategoryID string
	AssignedOn string
	Status     string
}

// Classification is the schema definition for catalog.classification
var Classification = ClassificationTable{
	Table:      "catalog.classification",
	ID:         "id",
	MovieID:    "movie_id",
	CategoryID: "category_id",
	AssignedOn: "assigned_on",
	Status:     "status",
}

func (t ClassificationTable) Columns() []string {
	return []string{t.ID, t.MovieID, t.CategoryID, t.AssignedOn, t.Status}
}
