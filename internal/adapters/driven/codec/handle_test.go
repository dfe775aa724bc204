package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
)

func TestHandleCodec_RoundTrip(t *testing.T) {
	c, err := NewHandleCodec(10)
	require.NoError(t, err)

	p := domain.VotePayload{Vote: domain.VoteParams{IssueID: "TP-7", HasVote: true}}

	token, err := c.Encode(p)
	require.NoError(t, err)
	require.LessOrEqual(t, len(token), driven.TokenByteLimit)

	got, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestHandleCodec_Decode_ConsumesEntry(t *testing.T) {
	c, err := NewHandleCodec(10)
	require.NoError(t, err)

	token, err := c.Encode(domain.BacklogStopPayload{})
	require.NoError(t, err)

	_, err = c.Decode(token)
	require.NoError(t, err)

	_, err = c.Decode(token)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	assert.Equal(t, 0, c.Len())
}

func TestHandleCodec_Decode_Malformed(t *testing.T) {
	c, err := NewHandleCodec(10)
	require.NoError(t, err)

	for _, in := range []string{"", "garbage", `{"_t":"bs"}`} {
		_, err := c.Decode(in)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, "input %q", in)
	}
}

func TestHandleCodec_Decode_NonCanonicalForms(t *testing.T) {
	c, err := NewHandleCodec(10)
	require.NoError(t, err)

	token, err := c.Encode(domain.BacklogStopPayload{})
	require.NoError(t, err)

	// Alternate spellings of the same UUID are not handles; only the
	// canonical form issued by Encode resolves.
	inputs := []string{
		"{" + token + "}",
		"urn:uuid:" + token,
		strings.ReplaceAll(token, "-", ""),
	}
	for _, in := range inputs {
		_, err := c.Decode(in)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, "input %q", in)
	}

	got, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.BacklogStopPayload{}, got)
}

func TestHandleCodec_Decode_UnknownHandle(t *testing.T) {
	c, err := NewHandleCodec(10)
	require.NoError(t, err)

	_, err = c.Decode(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestHandleCodec_Eviction(t *testing.T) {
	c, err := NewHandleCodec(2)
	require.NoError(t, err)

	first, err := c.Encode(domain.BacklogNextPayload{Params: domain.BacklogParams{Top: 5}})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.Encode(domain.VotePayload{Vote: domain.VoteParams{IssueID: fmt.Sprintf("TP-%d", i)}})
		require.NoError(t, err)
	}

	// The oldest handle got evicted; its button is stale, not broken.
	_, err = c.Decode(first)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	assert.Equal(t, 2, c.Len())
}
