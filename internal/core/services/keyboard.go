package services

import (
	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// voteButtonsPerRow is how many issue vote buttons share a keyboard row.
const voteButtonsPerRow = 3

// backlogKeyboard builds the inline keyboard for one backlog page: a row
// of vote buttons per three issues, then a control row with stop and the
// available page moves. On an empty page the next button is dropped and
// prev retargets to the page before the one the user came from, stepping
// back out of the end of the list.
func backlogKeyboard(codec driven.TokenCodec, issues domain.Issues, params domain.BacklogParams) *domain.InlineKeyboard {
	kb := &domain.InlineKeyboard{}

	var voteButtons []domain.Button
	for _, issue := range issues {
		label := issue.IDReadable
		if issue.HasVote {
			label = "⭐ " + issue.IDReadable
		}
		btn, ok := callbackButton(codec, label, domain.VotePayload{
			Vote: domain.VoteParams{IssueID: issue.IDReadable, HasVote: issue.HasVote},
		})
		if ok {
			voteButtons = append(voteButtons, btn)
		}
	}
	for len(voteButtons) > 0 {
		n := min(voteButtonsPerRow, len(voteButtons))
		kb.AddRow(voteButtons[:n])
		voteButtons = voteButtons[n:]
	}

	var controls []domain.Button
	if btn, ok := callbackButton(codec, "stop", domain.BacklogStopPayload{}); ok {
		controls = append(controls, btn)
	}
	prev, hasPrev := params.Prev()
	if len(issues) > 0 {
		if hasPrev {
			if btn, ok := callbackButton(codec, "prev", domain.BacklogPrevPayload{Params: prev}); ok {
				controls = append(controls, btn)
			}
		}
		if btn, ok := callbackButton(codec, "next", domain.BacklogNextPayload{Params: params.Next()}); ok {
			controls = append(controls, btn)
		}
	} else if hasPrev {
		// Past the end of the list: the page one step back is the one the
		// user just left, so the way out is the page before it.
		if prev, hasPrev := prev.Prev(); hasPrev {
			if btn, ok := callbackButton(codec, "prev", domain.BacklogPrevPayload{Params: prev}); ok {
				controls = append(controls, btn)
			}
		}
	}
	kb.AddRow(controls)

	return kb
}

// callbackButton encodes a payload into a button. A failed encode (token
// over the transport ceiling) drops the button rather than the message.
func callbackButton(codec driven.TokenCodec, label string, p domain.CallbackPayload) (domain.Button, bool) {
	token, err := codec.Encode(p)
	if err != nil {
		logger.Warn("dropping %q button: %v", label, err)
		return domain.Button{}, false
	}
	return domain.Button{Text: label, CallbackData: token}, true
}
