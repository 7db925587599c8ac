// Package derive holds the pure derivation functions of the core: each
// deriver maps one command plus an immutable state snapshot to exactly one
// event, success or failure. Derivers perform no I/O, read no clocks, and
// draw new identifiers only from the NextID function carried by the snapshot,
// whose result is captured in the returned event.
//
// Every deriver documents its invariant check order; the first failing
// invariant alone determines the reported failure reason.
package derive

import "github.com/mkoskela/qualcore/internal/domain"

// IDFunc produces the next entity identifier. Orchestration injects it when
// building a snapshot; derivers call it at most once per derivation.
type IDFunc func() int64

// CodeSnapshot is the read-model for code decisions. It is built fresh per
// command by the orchestration layer and never mutated.
type CodeSnapshot struct {
	Codes       []domain.Code
	CategoryIDs map[int64]bool
	NameLimit   int
	NextID      IDFunc
}

// names returns the names of all codes except the one with the given ID.
// Pass a non-positive exclude to include every code.
func (s CodeSnapshot) names(exclude int64) []string {
	out := make([]string, 0, len(s.Codes))
	for _, c := range s.Codes {
		if c.ID == exclude {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

// find returns the code with the given ID, if present.
func (s CodeSnapshot) find(id int64) (domain.Code, bool) {
	for _, c := range s.Codes {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Code{}, false
}

// CategorySnapshot is the read-model for category decisions.
type CategorySnapshot struct {
	Categories []domain.Category
	// AssignedCodes marks categories that still have codes assigned, which
	// blocks deletion.
	AssignedCodes map[int64]bool
	NameLimit     int
	NextID        IDFunc
}

func (s CategorySnapshot) names(exclude int64) []string {
	out := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == exclude {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

func (s CategorySnapshot) find(id int64) (domain.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// CodingSnapshot is the read-model for coding decisions.
type CodingSnapshot struct {
	CodeIDs   map[int64]bool
	SourceIDs map[int64]bool
	Codings   []domain.Coding
	NextID    IDFunc
}

func (s CodingSnapshot) find(id int64) (domain.Coding, bool) {
	for _, c := range s.Codings {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Coding{}, false
}

// hasSpan reports whether the same code is already applied to the exact span.
func (s CodingSnapshot) hasSpan(codeID, sourceID int64, start, end int) bool {
	for _, c := range s.Codings {
		if c.CodeID == codeID && c.SourceID == sourceID && c.Start == start && c.End == end {
			return true
		}
	}
	return false
}
