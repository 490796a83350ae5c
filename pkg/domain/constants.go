package domain

// Document keys of a dialog node record.
const (
	KeyDialogNode      = "dialog_node"
	KeyTitle           = "title"
	KeyConditions      = "conditions"
	KeyParent          = "parent"
	KeyPreviousSibling = "previous_sibling"
	KeyOutput          = "output"
	KeyContext         = "context"
	KeyNextStep        = "next_step"
	KeyType            = "type"
	KeyText            = "text"

	// KeyGoTo is the legacy jump field replaced by next_step.
	KeyGoTo = "go_to"
)

// Node type tags.
const (
	TypeFolder            = "folder"
	TypeResponseCondition = "response_condition"
)

// ConditionTrue is the always-true condition. A child carrying it is the
// conventional fallback branch of its parent.
const ConditionTrue = "true"

// Jump behaviors and selectors of next_step.
const (
	BehaviorJumpTo    = "jump_to"
	SelectorCondition = "condition"
	SelectorBody      = "body"
)

// Selection policies of structured response text.
const (
	SelectionSequential = "sequential"
	SelectionRandom     = "random"
)

// MaxSynonymLength bounds entity synonyms, in characters.
const MaxSynonymLength = 64
