package model

// Film represents a movie that can be scheduled for screenings.
// This struct corresponds to a row in the `films` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – title of the film.
//  Description – free-form synopsis shown in listings.
type Film struct {
    ID          uint64 `json:"id"`          // films.id
    Name        string `json:"name"`        // films.name
    Description string `json:"description"` // films.description
}
