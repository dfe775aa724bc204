package domain

// CallbackPayload is the parameter set bound to an inline keyboard button
// through a correlation token. A token codec round-trips these values; the
// transport only ever sees the opaque token string.
type CallbackPayload interface {
	isCallbackPayload()
}

// BacklogNextPayload pages forward to Params.
type BacklogNextPayload struct {
	Params BacklogParams
}

// BacklogPrevPayload pages back to Params.
type BacklogPrevPayload struct {
	Params BacklogParams
}

// VotePayload toggles the user's vote on an issue.
type VotePayload struct {
	Vote VoteParams
}

// BacklogStopPayload closes the backlog view.
type BacklogStopPayload struct{}

func (BacklogNextPayload) isCallbackPayload() {}
func (BacklogPrevPayload) isCallbackPayload() {}
func (VotePayload) isCallbackPayload()        {}
func (BacklogStopPayload) isCallbackPayload() {}

// CommandForPayload maps a decoded callback payload to its Command.
func CommandForPayload(p CallbackPayload) Command {
	switch p := p.(type) {
	case BacklogNextPayload:
		return BacklogNextCmd{Params: p.Params}
	case BacklogPrevPayload:
		return BacklogPrevCmd{Params: p.Params}
	case VotePayload:
		return VoteForIssueCmd{Vote: p.Vote}
	case BacklogStopPayload:
		return BacklogStopCmd{}
	default:
		return InvalidCmd{}
	}
}
