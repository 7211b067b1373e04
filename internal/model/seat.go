package model

// Seat describes a physical seat in a room.  Seats are uniquely
// identified by their room, row and column and never move between
// rooms once created.
//
// Fields:
//  ID     – primary key identifier.
//  RoomID – room to which this seat belongs.
//  Row    – row number within the room (1-based).
//  Column – seat position within the row (1-based).
type Seat struct {
    ID     uint64 `json:"id"`      // seats.id
    RoomID uint64 `json:"room_id"` // seats.room_id
    Row    uint32 `json:"row"`     // seats.seat_row
    Column uint32 `json:"column"`  // seats.seat_column
}
