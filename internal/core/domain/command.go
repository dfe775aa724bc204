package domain

// Command is a normalized user command (tagged variant). The normalizer
// produces exactly one Command per handled Update; the engine consumes it
// together with the user's current State.
type Command interface {
	isCommand()
}

// StartCmd greets the user and offers the tracker login link.
type StartCmd struct{}

// LoginCmd re-sends the tracker login link.
type LoginCmd struct{}

// BacklogCmd opens the backlog at the given window.
type BacklogCmd struct {
	Params BacklogParams
}

// NewIssueCmd starts the new-issue wizard.
type NewIssueCmd struct{}

// TextCmd is free text that matched no keyword. Wizard states consume it
// as field input; everything else ignores it.
type TextCmd struct {
	Text string
}

// SaveCmd finalizes the new-issue wizard.
type SaveCmd struct{}

// CancelCmd abandons the new-issue wizard.
type CancelCmd struct{}

// StopCmd leaves the backlog from the text side (/stop).
type StopCmd struct{}

// BacklogStopCmd leaves the backlog from the inline keyboard.
type BacklogStopCmd struct{}

// BacklogNextCmd pages the backlog forward to Params.
type BacklogNextCmd struct {
	Params BacklogParams
}

// BacklogPrevCmd pages the backlog back to Params.
type BacklogPrevCmd struct {
	Params BacklogParams
}

// VoteForIssueCmd toggles the user's vote on an issue.
type VoteForIssueCmd struct {
	Vote VoteParams
}

// InvalidCmd is produced when callback data cannot be resolved to a
// payload. The inline keyboard it came from is defensively cleared.
type InvalidCmd struct{}

func (StartCmd) isCommand()        {}
func (LoginCmd) isCommand()        {}
func (BacklogCmd) isCommand()      {}
func (NewIssueCmd) isCommand()     {}
func (TextCmd) isCommand()         {}
func (SaveCmd) isCommand()         {}
func (CancelCmd) isCommand()       {}
func (StopCmd) isCommand()         {}
func (BacklogStopCmd) isCommand()  {}
func (BacklogNextCmd) isCommand()  {}
func (BacklogPrevCmd) isCommand()  {}
func (VoteForIssueCmd) isCommand() {}
func (InvalidCmd) isCommand()      {}

// Event pairs a Command with its origin so the engine can address replies
// without touching transport types.
type Event struct {
	User      UserID
	Chat      ChatID
	FirstName string
	// Ref addresses the message the event came from. For callback events
	// this is the bot message carrying the keyboard, and page renders
	// edit it in place instead of sending a new message.
	Ref MessageRef
	// FromKeyboard is true when the event came from an inline button.
	FromKeyboard bool
	Command      Command
}
