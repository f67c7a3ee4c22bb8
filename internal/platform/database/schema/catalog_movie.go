package schema

// MovieTable represents the 'catalog.movie' table
type MovieTable struct {
	Table    string
	ID       string
	Title    string
	Director string
	Year     string
}

// Movie is the schema definition for catalog.movie
var Movie = MovieTable{
	Table:    "catalog.movie",
	ID:       "id",
	Title:    "title",
	Director: "director",
	Year:     "year",
}

func (t MovieTable) Columns() []string {
	return []string{t.ID, t.Title, t.Director, t.Year}
}
