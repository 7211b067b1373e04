package model

// Room represents a screening room in the cinema.  A room contains a
// fixed set of seats; screenings reference the room they take place in.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique room name (e.g. "Sala 1").
type Room struct {
    ID   uint64 `json:"id"`   // rooms.id
    Name string `json:"name"` // rooms.name
}
