package domain

// MaxNameLength is the inclusive upper bound, in runes, for code and category
// names. The bound is part of the snapshot handed to derivers so it can be
// overridden per deployment without touching derivation logic.
const MaxNameLength = 120

// Code is a label a researcher attaches to segments of source material.
// Codes may optionally belong to a category.
type Code struct {
	ID         int64
	Name       string
	Color      string
	CategoryID *int64
}

// Category groups related codes under a shared name.
type Category struct {
	ID   int64
	Name string
}

// Coding records one application of a code to a half-open character span
// [Start, End) of a source document.
type Coding struct {
	ID       int64
	CodeID   int64
	SourceID int64
	Start    int
	End      int
}
