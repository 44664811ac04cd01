package input

import "github.com/ibm5250/tn5250/internal/outbound"

// Direction is one of the four cursor-motion keys.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Key is one user input event, categorized by which field is set:
// exactly one of Rune, Motion, Nav, or AID applies to a given Key.
type Key struct {
	Rune   rune
	IsRune bool

	Motion   Direction
	IsMotion bool

	Nav   NavKey
	IsNav bool

	AID   outbound.AID
	IsAID bool

	// IsReset marks the Reset key: it clears a keyboard lock but, unlike
	// the other AID keys, has no defined wire byte of its own (the AID
	// table names none for Reset/SysReq/Attn), so it never reaches
	// outbound.BuildResponse.
	IsReset bool
}

// NavKey is a field-navigation key.
type NavKey int

const (
	NavTab NavKey = iota
	NavShiftTab
	NavHome
	NavFieldExit
)

// DataKey builds a data-entry Key event for rune r.
func DataKey(r rune) Key { return Key{Rune: r, IsRune: true} }

// MotionKey builds a cursor-motion Key event.
func MotionKey(d Direction) Key { return Key{Motion: d, IsMotion: true} }

// NavKeyEvent builds a field-navigation Key event.
func NavKeyEvent(n NavKey) Key { return Key{Nav: n, IsNav: true} }

// AIDKey builds an AID Key event.
func AIDKey(a outbound.AID) Key { return Key{AID: a, IsAID: true} }
