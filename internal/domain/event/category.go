package event

// CategoryCreated records a successfully created category.
type CategoryCreated struct {
	CategoryID int64
	Name       string
}

func (CategoryCreated) EventType() Type { return TypeCategoryCreated }
func (CategoryCreated) isEvent()        {}

// CategoryRenamed records a category taking a new name.
type CategoryRenamed struct {
	CategoryID int64
	OldName    string
	NewName    string
}

func (CategoryRenamed) EventType() Type { return TypeCategoryRenamed }
func (CategoryRenamed) isEvent()        {}

// CategoryDeleted records a removed category.
type CategoryDeleted struct {
	CategoryID int64
	Name       string
}

func (CategoryDeleted) EventType() Type { return TypeCategoryDeleted }
func (CategoryDeleted) isEvent()        {}

// CategoryNotCreated reports why a CreateCategory command was declined.
type CategoryNotCreated struct {
	ReasonCode string
	Name       string
}

func (CategoryNotCreated) EventType() Type   { return TypeCategoryNotCreated }
func (CategoryNotCreated) isEvent()          {}
func (f CategoryNotCreated) Reason() string  { return "CATEGORY_NOT_CREATED/" + f.ReasonCode }
func (f CategoryNotCreated) Message() string { return messageFor(f.Reason()) }

// CategoryNotCreatedEmptyName reports an empty or whitespace-only name.
func CategoryNotCreatedEmptyName(name string) CategoryNotCreated {
	return CategoryNotCreated{ReasonCode: ReasonEmptyName, Name: name}
}

// CategoryNotCreatedNameTooLong reports a name over the length bound.
func CategoryNotCreatedNameTooLong(name string) CategoryNotCreated {
	return CategoryNotCreated{ReasonCode: ReasonNameTooLong, Name: name}
}

// CategoryNotCreatedDuplicateName reports a case-insensitive name collision.
func CategoryNotCreatedDuplicateName(name string) CategoryNotCreated {
	return CategoryNotCreated{ReasonCode: ReasonDuplicateName, Name: name}
}

// CategoryNotRenamed reports why a RenameCategory command was declined.
type CategoryNotRenamed struct {
	ReasonCode string
	CategoryID int64
	Name       string
}

func (CategoryNotRenamed) EventType() Type   { return TypeCategoryNotRenamed }
func (CategoryNotRenamed) isEvent()          {}
func (f CategoryNotRenamed) Reason() string  { return "CATEGORY_NOT_RENAMED/" + f.ReasonCode }
func (f CategoryNotRenamed) Message() string { return messageFor(f.Reason()) }

// CategoryNotRenamedNotFound reports a rename of a missing category.
func CategoryNotRenamedNotFound(categoryID int64) CategoryNotRenamed {
	return CategoryNotRenamed{ReasonCode: ReasonNotFound, CategoryID: categoryID}
}

// CategoryNotRenamedEmptyName reports an empty or whitespace-only new name.
func CategoryNotRenamedEmptyName(categoryID int64, name string) CategoryNotRenamed {
	return CategoryNotRenamed{ReasonCode: ReasonEmptyName, CategoryID: categoryID, Name: name}
}

// CategoryNotRenamedNameTooLong reports a new name over the length bound.
func CategoryNotRenamedNameTooLong(categoryID int64, name string) CategoryNotRenamed {
	return CategoryNotRenamed{ReasonCode: ReasonNameTooLong, CategoryID: categoryID, Name: name}
}

// CategoryNotRenamedDuplicateName reports a collision with another category.
func CategoryNotRenamedDuplicateName(categoryID int64, name string) CategoryNotRenamed {
	return CategoryNotRenamed{ReasonCode: ReasonDuplicateName, CategoryID: categoryID, Name: name}
}

// CategoryNotDeleted reports why a DeleteCategory command was declined.
type CategoryNotDeleted struct {
	ReasonCode string
	CategoryID int64
}

func (CategoryNotDeleted) EventType() Type   { return TypeCategoryNotDeleted }
func (CategoryNotDeleted) isEvent()          {}
func (f CategoryNotDeleted) Reason() string  { return "CATEGORY_NOT_DELETED/" + f.ReasonCode }
func (f CategoryNotDeleted) Message() string { return messageFor(f.Reason()) }

// CategoryNotDeletedNotFound reports a delete of a missing category.
func CategoryNotDeletedNotFound(categoryID int64) CategoryNotDeleted {
	return CategoryNotDeleted{ReasonCode: ReasonNotFound, CategoryID: categoryID}
}

// CategoryNotDeletedNotEmpty reports a delete while codes are still assigned.
func CategoryNotDeletedNotEmpty(categoryID int64) CategoryNotDeleted {
	return CategoryNotDeleted{ReasonCode: ReasonCategoryNotEmpty, CategoryID: categoryID}
}
