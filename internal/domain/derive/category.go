package derive

import (
	"strings"

	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/domain/invariant"
)

// CreateCategory decides whether a new category may be created. Check order:
// name provided, name within limit, name unique.
func CreateCategory(cmd command.CreateCategory, state CategorySnapshot) event.Event {
	if !invariant.NameProvided(cmd.Name) {
		return event.CategoryNotCreatedEmptyName(cmd.Name)
	}
	if !invariant.NameWithinLimit(cmd.Name, state.NameLimit) {
		return event.CategoryNotCreatedNameTooLong(cmd.Name)
	}
	if !invariant.NameUnique(cmd.Name, state.names(0)) {
		return event.CategoryNotCreatedDuplicateName(cmd.Name)
	}

	return event.CategoryCreated{
		CategoryID: state.NextID(),
		Name:       strings.TrimSpace(cmd.Name),
	}
}

// RenameCategory decides whether a category may take a new name. Check order:
// category exists, name provided, name within limit, name unique among the
// remaining categories.
func RenameCategory(cmd command.RenameCategory, state CategorySnapshot) event.Event {
	cat, ok := state.find(cmd.CategoryID)
	if !ok {
		return event.CategoryNotRenamedNotFound(cmd.CategoryID)
	}
	if !invariant.NameProvided(cmd.NewName) {
		return event.CategoryNotRenamedEmptyName(cmd.CategoryID, cmd.NewName)
	}
	if !invariant.NameWithinLimit(cmd.NewName, state.NameLimit) {
		return event.CategoryNotRenamedNameTooLong(cmd.CategoryID, cmd.NewName)
	}
	if !invariant.NameUnique(cmd.NewName, state.names(cmd.CategoryID)) {
		return event.CategoryNotRenamedDuplicateName(cmd.CategoryID, cmd.NewName)
	}

	return event.CategoryRenamed{
		CategoryID: cat.ID,
		OldName:    cat.Name,
		NewName:    strings.TrimSpace(cmd.NewName),
	}
}

// DeleteCategory decides whether a category may be removed. Check order:
// category exists, category has no assigned codes.
func DeleteCategory(cmd command.DeleteCategory, state CategorySnapshot) event.Event {
	cat, ok := state.find(cmd.CategoryID)
	if !ok {
		return event.CategoryNotDeletedNotFound(cmd.CategoryID)
	}
	if state.AssignedCodes[cmd.CategoryID] {
		return event.CategoryNotDeletedNotEmpty(cmd.CategoryID)
	}

	return event.CategoryDeleted{CategoryID: cat.ID, Name: cat.Name}
}
