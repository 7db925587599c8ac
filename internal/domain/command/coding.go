package command

// ApplyCode asks for a code to be attached to the half-open span
// [Start, End) of a source document.
type ApplyCode struct {
	CodeID   int64
	SourceID int64
	Start    int
	End      int
}

func (ApplyCode) CommandName() string { return "ApplyCode" }
func (ApplyCode) isCommand()          {}

// NewApplyCode builds an ApplyCode command. Negative offsets are shape
// violations; span ordering (Start < End) is a business rule left to the
// deriver so it reports as a failure event.
func NewApplyCode(codeID, sourceID int64, start, end int) (ApplyCode, error) {
	fields := make(map[string]string)
	if codeID <= 0 {
		fields["code_id"] = "must be positive"
	}
	if sourceID <= 0 {
		fields["source_id"] = "must be positive"
	}
	if start < 0 {
		fields["start"] = "must not be negative"
	}
	if end < 0 {
		fields["end"] = "must not be negative"
	}
	if len(fields) > 0 {
		return ApplyCode{}, shapeError(fields)
	}
	return ApplyCode{CodeID: codeID, SourceID: sourceID, Start: start, End: end}, nil
}

// RemoveCoding asks for an existing coding to be detached.
type RemoveCoding struct {
	CodingID int64
}

func (RemoveCoding) CommandName() string { return "RemoveCoding" }
func (RemoveCoding) isCommand()          {}

// NewRemoveCoding builds a RemoveCoding command.
func NewRemoveCoding(codingID int64) (RemoveCoding, error) {
	if codingID <= 0 {
		return RemoveCoding{}, shapeError(map[string]string{"coding_id": "must be positive"})
	}
	return RemoveCoding{CodingID: codingID}, nil
}
