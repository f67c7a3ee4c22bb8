package movie

// Movie represents a single film in the catalog.
//
// Title and director are optional attributes; the store-assigned ID is the
// only identity. Year carries no null-guard, so zero is indistinguishable
// from "unset".
type Movie struct {
	ID       int     `json:"id"`
	Title    *string `json:"title"`
	Director *string `json:"director"`
	Year     int     `json:"year"`
}

// UpdateInput is the partial-overwrite payload for PUT /movies/{id}.
//
// Title and director are applied only when present in the body; year is
// always overwritten.
type UpdateInput struct {
	Title    *string `json:"title"`
	Director *string `json:"director"`
	Year     int     `json:"year"`
}

// Global field names for validation
const (
	FieldID = "id"
)
