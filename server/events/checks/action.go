package checks

// ActionKind enumerates the four mutations the bot may apply to a PR.
type ActionKind int

const (
	ActionPostComment ActionKind = iota
	ActionAddLabel
	ActionRemoveLabel
	ActionClosePull
)

func (k ActionKind) String() string {
	switch k {
	case ActionPostComment:
		return "comment"
	case ActionAddLabel:
		return "add-label"
	case ActionRemoveLabel:
		return "remove-label"
	case ActionClosePull:
		return "close"
	}
	return "unknown"
}

// Action is one intended mutation against a pull request. Checks emit
// actions in the order they should be executed so that an explanatory
// comment always lands before the label or state change it explains.
type Action struct {
	Kind  ActionKind
	Label string
	Body  string
}

func PostComment(body string) Action {
	return Action{Kind: ActionPostComment, Body: body}
}

func AddLabel(name string) Action {
	return Action{Kind: ActionAddLabel, Label: name}
}

func RemoveLabel(name string) Action {
	return Action{Kind: ActionRemoveLabel, Label: name}
}

func ClosePull() Action {
	return Action{Kind: ActionClosePull}
}
