// Package room provides the room listing tool.
//
// Rooms are joined with a concurrent accessory snapshot so that every room
// carries its accessory and online counts.
package room
