package event

// CodeApplied records a code attached to a span of a source document.
type CodeApplied struct {
	CodingID int64
	CodeID   int64
	SourceID int64
	Start    int
	End      int
}

func (CodeApplied) EventType() Type { return TypeCodeApplied }
func (CodeApplied) isEvent()        {}

// CodingRemoved records a coding detached from its source span.
type CodingRemoved struct {
	CodingID int64
	CodeID   int64
	SourceID int64
	Start    int
	End      int
}

func (CodingRemoved) EventType() Type { return TypeCodingRemoved }
func (CodingRemoved) isEvent()        {}

// CodeNotApplied reports why an ApplyCode command was declined.
type CodeNotApplied struct {
	ReasonCode string
	CodeID     int64
	SourceID   int64
	Start      int
	End        int
}

func (CodeNotApplied) EventType() Type   { return TypeCodeNotApplied }
func (CodeNotApplied) isEvent()          {}
func (f CodeNotApplied) Reason() string  { return "CODE_NOT_APPLIED/" + f.ReasonCode }
func (f CodeNotApplied) Message() string { return messageFor(f.Reason()) }

// CodeNotAppliedCodeNotFound reports an application of a missing code.
func CodeNotAppliedCodeNotFound(codeID, sourceID int64) CodeNotApplied {
	return CodeNotApplied{ReasonCode: ReasonCodeNotFound, CodeID: codeID, SourceID: sourceID}
}

// CodeNotAppliedSourceNotFound reports a dangling source reference.
func CodeNotAppliedSourceNotFound(codeID, sourceID int64) CodeNotApplied {
	return CodeNotApplied{ReasonCode: ReasonSourceNotFound, CodeID: codeID, SourceID: sourceID}
}

// CodeNotAppliedInvalidSpan reports a degenerate or negative span.
func CodeNotAppliedInvalidSpan(codeID, sourceID int64, start, end int) CodeNotApplied {
	return CodeNotApplied{ReasonCode: ReasonInvalidSpan, CodeID: codeID, SourceID: sourceID, Start: start, End: end}
}

// CodeNotAppliedDuplicateSpan reports the same code already applied to the
// same span.
func CodeNotAppliedDuplicateSpan(codeID, sourceID int64, start, end int) CodeNotApplied {
	return CodeNotApplied{ReasonCode: ReasonDuplicateSpan, CodeID: codeID, SourceID: sourceID, Start: start, End: end}
}

// CodingNotRemoved reports why a RemoveCoding command was declined.
type CodingNotRemoved struct {
	ReasonCode string
	CodingID   int64
}

func (CodingNotRemoved) EventType() Type   { return TypeCodingNotRemoved }
func (CodingNotRemoved) isEvent()          {}
func (f CodingNotRemoved) Reason() string  { return "CODING_NOT_REMOVED/" + f.ReasonCode }
func (f CodingNotRemoved) Message() string { return messageFor(f.Reason()) }

// CodingNotRemovedNotFound reports a removal of a missing coding.
func CodingNotRemovedNotFound(codingID int64) CodingNotRemoved {
	return CodingNotRemoved{ReasonCode: ReasonNotFound, CodingID: codingID}
}
