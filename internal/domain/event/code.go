package event

// CodeCreated records a successfully created code.
type CodeCreated struct {
	CodeID     int64
	Name       string
	Color      string
	CategoryID *int64
}

func (CodeCreated) EventType() Type { return TypeCodeCreated }
func (CodeCreated) isEvent()        {}

// CodeRenamed records a code taking a new name.
type CodeRenamed struct {
	CodeID  int64
	OldName string
	NewName string
}

func (CodeRenamed) EventType() Type { return TypeCodeRenamed }
func (CodeRenamed) isEvent()        {}

// CodeRecolored records a code taking a new color.
type CodeRecolored struct {
	CodeID   int64
	OldColor string
	NewColor string
}

func (CodeRecolored) EventType() Type { return TypeCodeRecolored }
func (CodeRecolored) isEvent()        {}

// CodeDeleted records a removed code. Name is kept for reporting.
type CodeDeleted struct {
	CodeID int64
	Name   string
}

func (CodeDeleted) EventType() Type { return TypeCodeDeleted }
func (CodeDeleted) isEvent()        {}

// CodeAssigned records a code moving into a category.
type CodeAssigned struct {
	CodeID     int64
	CategoryID int64
}

func (CodeAssigned) EventType() Type { return TypeCodeAssigned }
func (CodeAssigned) isEvent()        {}

// CodeNotCreated reports why a CreateCode command was declined. Name, Color,
// and CategoryID carry the offending inputs where relevant to the reason.
type CodeNotCreated struct {
	ReasonCode string
	Name       string
	Color      string
	CategoryID int64
}

func (CodeNotCreated) EventType() Type   { return TypeCodeNotCreated }
func (CodeNotCreated) isEvent()          {}
func (f CodeNotCreated) Reason() string  { return "CODE_NOT_CREATED/" + f.ReasonCode }
func (f CodeNotCreated) Message() string { return messageFor(f.Reason()) }

// CodeNotCreatedEmptyName reports an empty or whitespace-only name.
func CodeNotCreatedEmptyName(name string) CodeNotCreated {
	return CodeNotCreated{ReasonCode: ReasonEmptyName, Name: name}
}

// CodeNotCreatedNameTooLong reports a name over the inclusive length bound.
func CodeNotCreatedNameTooLong(name string) CodeNotCreated {
	return CodeNotCreated{ReasonCode: ReasonNameTooLong, Name: name}
}

// CodeNotCreatedDuplicateName reports a case-insensitive name collision.
func CodeNotCreatedDuplicateName(name string) CodeNotCreated {
	return CodeNotCreated{ReasonCode: ReasonDuplicateName, Name: name}
}

// CodeNotCreatedInvalidColor reports a malformed color value.
func CodeNotCreatedInvalidColor(name, color string) CodeNotCreated {
	return CodeNotCreated{ReasonCode: ReasonInvalidColor, Name: name, Color: color}
}

// CodeNotCreatedCategoryNotFound reports a dangling category reference.
func CodeNotCreatedCategoryNotFound(name string, categoryID int64) CodeNotCreated {
	return CodeNotCreated{ReasonCode: ReasonCategoryNotFound, Name: name, CategoryID: categoryID}
}

// CodeNotRenamed reports why a RenameCode command was declined.
type CodeNotRenamed struct {
	ReasonCode string
	CodeID     int64
	Name       string
}

func (CodeNotRenamed) EventType() Type   { return TypeCodeNotRenamed }
func (CodeNotRenamed) isEvent()          {}
func (f CodeNotRenamed) Reason() string  { return "CODE_NOT_RENAMED/" + f.ReasonCode }
func (f CodeNotRenamed) Message() string { return messageFor(f.Reason()) }

// CodeNotRenamedNotFound reports a rename of a missing code.
func CodeNotRenamedNotFound(codeID int64) CodeNotRenamed {
	return CodeNotRenamed{ReasonCode: ReasonNotFound, CodeID: codeID}
}

// CodeNotRenamedEmptyName reports an empty or whitespace-only new name.
func CodeNotRenamedEmptyName(codeID int64, name string) CodeNotRenamed {
	return CodeNotRenamed{ReasonCode: ReasonEmptyName, CodeID: codeID, Name: name}
}

// CodeNotRenamedNameTooLong reports a new name over the length bound.
func CodeNotRenamedNameTooLong(codeID int64, name string) CodeNotRenamed {
	return CodeNotRenamed{ReasonCode: ReasonNameTooLong, CodeID: codeID, Name: name}
}

// CodeNotRenamedDuplicateName reports a case-insensitive collision with
// another code's name.
func CodeNotRenamedDuplicateName(codeID int64, name string) CodeNotRenamed {
	return CodeNotRenamed{ReasonCode: ReasonDuplicateName, CodeID: codeID, Name: name}
}

// CodeNotRecolored reports why a RecolorCode command was declined.
type CodeNotRecolored struct {
	ReasonCode string
	CodeID     int64
	Color      string
}

func (CodeNotRecolored) EventType() Type   { return TypeCodeNotRecolored }
func (CodeNotRecolored) isEvent()          {}
func (f CodeNotRecolored) Reason() string  { return "CODE_NOT_RECOLORED/" + f.ReasonCode }
func (f CodeNotRecolored) Message() string { return messageFor(f.Reason()) }

// CodeNotRecoloredNotFound reports a recolor of a missing code.
func CodeNotRecoloredNotFound(codeID int64) CodeNotRecolored {
	return CodeNotRecolored{ReasonCode: ReasonNotFound, CodeID: codeID}
}

// CodeNotRecoloredInvalidColor reports a malformed color value.
func CodeNotRecoloredInvalidColor(codeID int64, color string) CodeNotRecolored {
	return CodeNotRecolored{ReasonCode: ReasonInvalidColor, CodeID: codeID, Color: color}
}

// CodeNotDeleted reports why a DeleteCode command was declined.
type CodeNotDeleted struct {
	ReasonCode string
	CodeID     int64
}

func (CodeNotDeleted) EventType() Type   { return TypeCodeNotDeleted }
func (CodeNotDeleted) isEvent()          {}
func (f CodeNotDeleted) Reason() string  { return "CODE_NOT_DELETED/" + f.ReasonCode }
func (f CodeNotDeleted) Message() string { return messageFor(f.Reason()) }

// CodeNotDeletedNotFound reports a delete of a missing code.
func CodeNotDeletedNotFound(codeID int64) CodeNotDeleted {
	return CodeNotDeleted{ReasonCode: ReasonNotFound, CodeID: codeID}
}

// CodeNotAssigned reports why an AssignCodeToCategory command was declined.
type CodeNotAssigned struct {
	ReasonCode string
	CodeID     int64
	CategoryID int64
}

func (CodeNotAssigned) EventType() Type   { return TypeCodeNotAssigned }
func (CodeNotAssigned) isEvent()          {}
func (f CodeNotAssigned) Reason() string  { return "CODE_NOT_ASSIGNED/" + f.ReasonCode }
func (f CodeNotAssigned) Message() string { return messageFor(f.Reason()) }

// CodeNotAssignedCodeNotFound reports an assignment of a missing code.
func CodeNotAssignedCodeNotFound(codeID, categoryID int64) CodeNotAssigned {
	return CodeNotAssigned{ReasonCode: ReasonCodeNotFound, CodeID: codeID, CategoryID: categoryID}
}

// CodeNotAssignedCategoryNotFound reports a dangling category reference.
func CodeNotAssignedCategoryNotFound(codeID, categoryID int64) CodeNotAssigned {
	return CodeNotAssigned{ReasonCode: ReasonCategoryNotFound, CodeID: codeID, CategoryID: categoryID}
}
