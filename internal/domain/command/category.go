package command

// CreateCategory asks for a new category with the given name.
type CreateCategory struct {
	Name string
}

func (CreateCategory) CommandName() string { return "CreateCategory" }
func (CreateCategory) isCommand()          {}

// NewCreateCategory builds a CreateCategory command. Name content rules are
// the deriver's concern.
func NewCreateCategory(name string) (CreateCategory, error) {
	return CreateCategory{Name: name}, nil
}

// RenameCategory asks for an existing category to take a new name.
type RenameCategory struct {
	CategoryID int64
	NewName    string
}

func (RenameCategory) CommandName() string { return "RenameCategory" }
func (RenameCategory) isCommand()          {}

// NewRenameCategory builds a RenameCategory command.
func NewRenameCategory(categoryID int64, newName string) (RenameCategory, error) {
	if categoryID <= 0 {
		return RenameCategory{}, shapeError(map[string]string{"category_id": "must be positive"})
	}
	return RenameCategory{CategoryID: categoryID, NewName: newName}, nil
}

// DeleteCategory asks for an existing category to be removed.
type DeleteCategory struct {
	CategoryID int64
}

func (DeleteCategory) CommandName() string { return "DeleteCategory" }
func (DeleteCategory) isCommand()          {}

// NewDeleteCategory builds a DeleteCategory command.
func NewDeleteCategory(categoryID int64) (DeleteCategory, error) {
	if categoryID <= 0 {
		return DeleteCategory{}, shapeError(map[string]string{"category_id": "must be positive"})
	}
	return DeleteCategory{CategoryID: categoryID}, nil
}
