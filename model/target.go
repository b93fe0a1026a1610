package model

import "fmt"

// TargetClass says which snapshot array a TargetRef indexes into.
type TargetClass string

const (
	ClassNone  TargetClass = "none"
	ClassEnemy TargetClass = "enemy"
	ClassAlly  TargetClass = "ally"
	ClassSelf  TargetClass = "self"
)

// TargetRef is an explicit, optional reference to a combatant in a snapshot:
// a class plus an index into the matching array. The zero value is NoTarget.
// Decisions carry TargetRefs instead of pointers so "no target" is a state
// callers must handle, not a nil waiting to be dereferenced.
type TargetRef struct {
	Class TargetClass `json:"class"`
	Index int         `json:"index"`
}

// NoTarget is the absent target.
var NoTarget = TargetRef{Class: ClassNone}

// Valid reports whether the ref points at anything.
func (r TargetRef) Valid() bool {
	return r.Class != ClassNone && r.Class != ""
}

func (r TargetRef) String() string {
	if !r.Valid() {
		return "none"
	}
	return fmt.Sprintf("%s[%d]", r.Class, r.Index)
}

// EnemyRef and AllyRef build refs into the snapshot arrays.
func EnemyRef(i int) TargetRef { return TargetRef{Class: ClassEnemy, Index: i} }
func AllyRef(i int) TargetRef  { return TargetRef{Class: ClassAlly, Index: i} }

// SelfRef refers to the acting agent. Index is its position in the ally array.
func SelfRef(allyIndex int) TargetRef {
	return TargetRef{Class: ClassSelf, Index: allyIndex}
}
