package command

// CreateCode asks for a new code with the given name and color, optionally
// placed in a category.
type CreateCode struct {
	Name       string
	Color      string
	CategoryID *int64
}

func (CreateCode) CommandName() string { return "CreateCode" }
func (CreateCode) isCommand()          {}

// NewCreateCode builds a CreateCode command. Color must be present; name
// content rules (emptiness, length, uniqueness) are the deriver's concern so
// they surface as failure events, not constructor errors.
func NewCreateCode(name, color string, categoryID *int64) (CreateCode, error) {
	fields := make(map[string]string)
	if color == "" {
		fields["color"] = "required"
	}
	if categoryID != nil && *categoryID <= 0 {
		fields["category_id"] = "must be positive"
	}
	if len(fields) > 0 {
		return CreateCode{}, shapeError(fields)
	}
	return CreateCode{Name: name, Color: color, CategoryID: categoryID}, nil
}

// RenameCode asks for an existing code to take a new name.
type RenameCode struct {
	CodeID  int64
	NewName string
}

func (RenameCode) CommandName() string { return "RenameCode" }
func (RenameCode) isCommand()          {}

// NewRenameCode builds a RenameCode command.
func NewRenameCode(codeID int64, newName string) (RenameCode, error) {
	if codeID <= 0 {
		return RenameCode{}, shapeError(map[string]string{"code_id": "must be positive"})
	}
	return RenameCode{CodeID: codeID, NewName: newName}, nil
}

// RecolorCode asks for an existing code to take a new color.
type RecolorCode struct {
	CodeID int64
	Color  string
}

func (RecolorCode) CommandName() string { return "RecolorCode" }
func (RecolorCode) isCommand()          {}

// NewRecolorCode builds a RecolorCode command.
func NewRecolorCode(codeID int64, color string) (RecolorCode, error) {
	fields := make(map[string]string)
	if codeID <= 0 {
		fields["code_id"] = "must be positive"
	}
	if color == "" {
		fields["color"] = "required"
	}
	if len(fields) > 0 {
		return RecolorCode{}, shapeError(fields)
	}
	return RecolorCode{CodeID: codeID, Color: color}, nil
}

// DeleteCode asks for an existing code to be removed.
type DeleteCode struct {
	CodeID int64
}

func (DeleteCode) CommandName() string { return "DeleteCode" }
func (DeleteCode) isCommand()          {}

// NewDeleteCode builds a DeleteCode command.
func NewDeleteCode(codeID int64) (DeleteCode, error) {
	if codeID <= 0 {
		return DeleteCode{}, shapeError(map[string]string{"code_id": "must be positive"})
	}
	return DeleteCode{CodeID: codeID}, nil
}

// AssignCodeToCategory asks for an existing code to move into a category.
type AssignCodeToCategory struct {
	CodeID     int64
	CategoryID int64
}

func (AssignCodeToCategory) CommandName() string { return "AssignCodeToCategory" }
func (AssignCodeToCategory) isCommand()          {}

// NewAssignCodeToCategory builds an AssignCodeToCategory command.
func NewAssignCodeToCategory(codeID, categoryID int64) (AssignCodeToCategory, error) {
	fields := make(map[string]string)
	if codeID <= 0 {
		fields["code_id"] = "must be positive"
	}
	if categoryID <= 0 {
		fields["category_id"] = "must be positive"
	}
	if len(fields) > 0 {
		return AssignCodeToCategory{}, shapeError(fields)
	}
	return AssignCodeToCategory{CodeID: codeID, CategoryID: categoryID}, nil
}
