package event

// messages maps every reachable reason code to its user-facing text. The
// texts are stable: callers may key UI strings or translations off the reason
// code, but the fallback message here must never leak internal identifiers.
var messages = map[string]string{
	"CODE_NOT_CREATED/EMPTY_NAME":         "A code needs a name.",
	"CODE_NOT_CREATED/NAME_TOO_LONG":      "The code name is too long.",
	"CODE_NOT_CREATED/DUPLICATE_NAME":     "A code with this name already exists.",
	"CODE_NOT_CREATED/INVALID_COLOR":      "The color must be a #rrggbb value.",
	"CODE_NOT_CREATED/CATEGORY_NOT_FOUND": "The chosen category does not exist.",

	"CODE_NOT_RENAMED/NOT_FOUND":      "The code to rename does not exist.",
	"CODE_NOT_RENAMED/EMPTY_NAME":     "A code needs a name.",
	"CODE_NOT_RENAMED/NAME_TOO_LONG":  "The code name is too long.",
	"CODE_NOT_RENAMED/DUPLICATE_NAME": "A code with this name already exists.",

	"CODE_NOT_RECOLORED/NOT_FOUND":     "The code to recolor does not exist.",
	"CODE_NOT_RECOLORED/INVALID_COLOR": "The color must be a #rrggbb value.",

	"CODE_NOT_DELETED/NOT_FOUND": "The code to delete does not exist.",

	"CODE_NOT_ASSIGNED/CODE_NOT_FOUND":     "The code to assign does not exist.",
	"CODE_NOT_ASSIGNED/CATEGORY_NOT_FOUND": "The chosen category does not exist.",

	"CATEGORY_NOT_CREATED/EMPTY_NAME":     "A category needs a name.",
	"CATEGORY_NOT_CREATED/NAME_TOO_LONG":  "The category name is too long.",
	"CATEGORY_NOT_CREATED/DUPLICATE_NAME": "A category with this name already exists.",

	"CATEGORY_NOT_RENAMED/NOT_FOUND":      "The category to rename does not exist.",
	"CATEGORY_NOT_RENAMED/EMPTY_NAME":     "A category needs a name.",
	"CATEGORY_NOT_RENAMED/NAME_TOO_LONG":  "The category name is too long.",
	"CATEGORY_NOT_RENAMED/DUPLICATE_NAME": "A category with this name already exists.",

	"CATEGORY_NOT_DELETED/NOT_FOUND":          "The category to delete does not exist.",
	"CATEGORY_NOT_DELETED/CATEGORY_NOT_EMPTY": "The category still contains codes.",

	"CODE_NOT_APPLIED/CODE_NOT_FOUND":   "The code to apply does not exist.",
	"CODE_NOT_APPLIED/SOURCE_NOT_FOUND": "The source document does not exist.",
	"CODE_NOT_APPLIED/INVALID_SPAN":     "The selected span is invalid.",
	"CODE_NOT_APPLIED/DUPLICATE_SPAN":   "This code is already applied to the selected span.",

	"CODING_NOT_REMOVED/NOT_FOUND": "The coding to remove does not exist.",
}

// messageFor resolves a reason code to its stable text. Unknown codes return
// a generic refusal rather than an empty string so a missed registration is
// visible instead of silent.
func messageFor(reason string) string {
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "The operation was declined."
}

// Reasons returns every registered reason code. Used by the registry test to
// keep factories and messages in lockstep.
func Reasons() []string {
	out := make([]string, 0, len(messages))
	for reason := range messages {
		out = append(out, reason)
	}
	return out
}
