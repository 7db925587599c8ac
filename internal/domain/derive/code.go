package derive

import (
	"strings"

	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/domain/invariant"
)

// CreateCode decides whether a new code may be created. Check order:
// name provided, name within limit, name unique, color well-formed,
// referenced category exists. The stored name is the trimmed form.
func CreateCode(cmd command.CreateCode, state CodeSnapshot) event.Event {
	name := strings.TrimSpace(cmd.Name)

	if !invariant.NameProvided(cmd.Name) {
		return event.CodeNotCreatedEmptyName(cmd.Name)
	}
	if !invariant.NameWithinLimit(cmd.Name, state.NameLimit) {
		return event.CodeNotCreatedNameTooLong(cmd.Name)
	}
	if !invariant.NameUnique(cmd.Name, state.names(0)) {
		return event.CodeNotCreatedDuplicateName(cmd.Name)
	}
	if !invariant.ColorWellFormed(cmd.Color) {
		return event.CodeNotCreatedInvalidColor(name, cmd.Color)
	}
	if cmd.CategoryID != nil && !invariant.IDExists(*cmd.CategoryID, state.CategoryIDs) {
		return event.CodeNotCreatedCategoryNotFound(name, *cmd.CategoryID)
	}

	return event.CodeCreated{
		CodeID:     state.NextID(),
		Name:       name,
		Color:      cmd.Color,
		CategoryID: cmd.CategoryID,
	}
}

// RenameCode decides whether a code may take a new name. Check order:
// code exists, name provided, name within limit, name unique among the
// remaining codes.
func RenameCode(cmd command.RenameCode, state CodeSnapshot) event.Event {
	code, ok := state.find(cmd.CodeID)
	if !ok {
		return event.CodeNotRenamedNotFound(cmd.CodeID)
	}
	if !invariant.NameProvided(cmd.NewName) {
		return event.CodeNotRenamedEmptyName(cmd.CodeID, cmd.NewName)
	}
	if !invariant.NameWithinLimit(cmd.NewName, state.NameLimit) {
		return event.CodeNotRenamedNameTooLong(cmd.CodeID, cmd.NewName)
	}
	if !invariant.NameUnique(cmd.NewName, state.names(cmd.CodeID)) {
		return event.CodeNotRenamedDuplicateName(cmd.CodeID, cmd.NewName)
	}

	return event.CodeRenamed{
		CodeID:  code.ID,
		OldName: code.Name,
		NewName: strings.TrimSpace(cmd.NewName),
	}
}

// RecolorCode decides whether a code may take a new color. Check order:
// code exists, color well-formed.
func RecolorCode(cmd command.RecolorCode, state CodeSnapshot) event.Event {
	code, ok := state.find(cmd.CodeID)
	if !ok {
		return event.CodeNotRecoloredNotFound(cmd.CodeID)
	}
	if !invariant.ColorWellFormed(cmd.Color) {
		return event.CodeNotRecoloredInvalidColor(cmd.CodeID, cmd.Color)
	}

	return event.CodeRecolored{
		CodeID:   code.ID,
		OldColor: code.Color,
		NewColor: cmd.Color,
	}
}

// DeleteCode decides whether a code may be removed. Single check: the code
// exists.
func DeleteCode(cmd command.DeleteCode, state CodeSnapshot) event.Event {
	code, ok := state.find(cmd.CodeID)
	if !ok {
		return event.CodeNotDeletedNotFound(cmd.CodeID)
	}

	return event.CodeDeleted{CodeID: code.ID, Name: code.Name}
}

// AssignCodeToCategory decides whether a code may move into a category.
// Check order: code exists, category exists.
func AssignCodeToCategory(cmd command.AssignCodeToCategory, state CodeSnapshot) event.Event {
	if _, ok := state.find(cmd.CodeID); !ok {
		return event.CodeNotAssignedCodeNotFound(cmd.CodeID, cmd.CategoryID)
	}
	if !invariant.IDExists(cmd.CategoryID, state.CategoryIDs) {
		return event.CodeNotAssignedCategoryNotFound(cmd.CodeID, cmd.CategoryID)
	}

	return event.CodeAssigned{CodeID: cmd.CodeID, CategoryID: cmd.CategoryID}
}
