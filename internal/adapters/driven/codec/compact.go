package codec

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
)

// Ensure CompactCodec implements the interface.
var _ driven.TokenCodec = (*CompactCodec)(nil)

// Wire tags. These ride inside live keyboards; do not rename.
const (
	wireBacklogNext = "bn"
	wireBacklogPrev = "bp"
	wireVote        = "vi"
	wireBacklogStop = "bs"
)

// wireRecord is the single-letter-keyed JSON form of a callback payload.
// Keys are this short because the whole token must fit the transport's
// 64-byte callback ceiling next to real issue ids.
type wireRecord struct {
	T     string `json:"_t"`
	Top   *int   `json:"t,omitempty"`
	Skip  *int   `json:"s,omitempty"`
	Issue string `json:"i,omitempty"`
	Vote  *bool  `json:"v,omitempty"`
}

// CompactCodec serializes callback payloads directly into the token.
// Decode is pure deserialization with no shared state, so tokens survive
// process restarts and decode any number of times.
type CompactCodec struct{}

// NewCompactCodec creates a compact codec.
func NewCompactCodec() *CompactCodec {
	return &CompactCodec{}
}

// Encode serializes the payload. Payloads whose serialized form exceeds
// the transport ceiling fail with domain.ErrTokenTooBig.
func (c *CompactCodec) Encode(p domain.CallbackPayload) (string, error) {
	var rec wireRecord
	switch p := p.(type) {
	case domain.BacklogNextPayload:
		rec = paramsRecord(wireBacklogNext, p.Params)
	case domain.BacklogPrevPayload:
		rec = paramsRecord(wireBacklogPrev, p.Params)
	case domain.VotePayload:
		v := p.Vote.HasVote
		rec = wireRecord{T: wireVote, Issue: p.Vote.IssueID, Vote: &v}
	case domain.BacklogStopPayload:
		rec = wireRecord{T: wireBacklogStop}
	default:
		return "", fmt.Errorf("%w: unknown payload %T", domain.ErrInvalidInput, p)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	if len(data) > driven.TokenByteLimit {
		return "", fmt.Errorf("%w: %d bytes", domain.ErrTokenTooBig, len(data))
	}
	return string(data), nil
}

// Decode deserializes a token. Data that does not parse as a wire record
// is domain.ErrTokenMalformed; a well-formed record with an unrecognized
// tag is domain.ErrTokenNotFound.
func (c *CompactCodec) Decode(token string) (domain.CallbackPayload, error) {
	var rec wireRecord
	if err := json.Unmarshal([]byte(token), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
	switch rec.T {
	case wireBacklogNext:
		params, err := rec.params()
		if err != nil {
			return nil, err
		}
		return domain.BacklogNextPayload{Params: params}, nil
	case wireBacklogPrev:
		params, err := rec.params()
		if err != nil {
			return nil, err
		}
		return domain.BacklogPrevPayload{Params: params}, nil
	case wireVote:
		if rec.Issue == "" || rec.Vote == nil {
			return nil, fmt.Errorf("%w: incomplete vote record", domain.ErrTokenMalformed)
		}
		return domain.VotePayload{Vote: domain.VoteParams{IssueID: rec.Issue, HasVote: *rec.Vote}}, nil
	case wireBacklogStop:
		return domain.BacklogStopPayload{}, nil
	default:
		return nil, fmt.Errorf("%w: tag %q", domain.ErrTokenNotFound, rec.T)
	}
}

func paramsRecord(tag string, p domain.BacklogParams) wireRecord {
	top, skip := p.Top, p.Skip
	return wireRecord{T: tag, Top: &top, Skip: &skip}
}

func (r wireRecord) params() (domain.BacklogParams, error) {
	if r.Top == nil || r.Skip == nil {
		return domain.BacklogParams{}, fmt.Errorf("%w: incomplete page record", domain.ErrTokenMalformed)
	}
	// Callback data is attacker-controlled; a forged window must not reach
	// the engine or the tracker query.
	if *r.Top <= 0 || *r.Skip < 0 {
		return domain.BacklogParams{}, fmt.Errorf("%w: invalid page window", domain.ErrTokenMalformed)
	}
	return domain.BacklogParams{Top: *r.Top, Skip: *r.Skip}, nil
}
