package model

import "time"

// City is a delivery destination served by the operation.  Cities are
// append-only reference data: a row is created the first time a name is
// seen and is never deleted.  This struct corresponds to a row in the
// `cities` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique display name of the city.
//  CreatedAt – timestamp when the city was first registered.
type City struct {
	ID        uint64    // cities.id
	Name      string    // cities.name
	CreatedAt time.Time // cities.created_at
}
