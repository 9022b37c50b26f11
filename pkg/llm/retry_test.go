package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter returns canned responses in order and records the prompts
// it receives.
type scriptedCompleter struct {
	responses []string
	prompts   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := len(s.prompts) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func TestJSONWithRetrySucceedsFirstAttempt(t *testing.T) {
	c := &scriptedCompleter{responses: []string{`{"bid_proposal_included": true, "should_forward": false}`}}

	var out struct {
		BidProposalIncluded bool `json:"bid_proposal_included"`
		ShouldForward       bool `json:"should_forward"`
	}
	err := JSONWithRetry(context.Background(), c, []string{"classify this email"}, 3, &out)

	require.NoError(t, err)
	assert.True(t, out.BidProposalIncluded)
	assert.False(t, out.ShouldForward)
	assert.Len(t, c.prompts, 1)
}

func TestJSONWithRetryGrowsPromptOnFailure(t *testing.T) {
	c := &scriptedCompleter{responses: []string{
		"sorry, I cannot do that",
		"{broken json",
		"```json\n{\"ok\": true}\n```",
	}}

	var out struct {
		OK bool `json:"ok"`
	}
	err := JSONWithRetry(context.Background(), c, []string{"respond in JSON"}, 3, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	require.Len(t, c.prompts, 3)

	// Each retry carries the accumulated failure context.
	assert.Greater(t, len(c.prompts[1]), len(c.prompts[0]))
	assert.Greater(t, len(c.prompts[2]), len(c.prompts[1]))
	assert.Contains(t, c.prompts[1], "Previous attempt failed with error:")
	assert.Contains(t, c.prompts[2], "ONLY valid JSON")
}

func TestJSONWithRetryExhaustsAttempts(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"not json at all"}}

	var out map[string]interface{}
	err := JSONWithRetry(context.Background(), c, []string{"respond in JSON"}, 3, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Len(t, c.prompts, 3)
}

func TestJSONWithRetryDoesNotMutateSegments(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"nope", `{"ok": true}`}}
	segments := []string{"a", "b"}

	var out map[string]interface{}
	err := JSONWithRetry(context.Background(), c, segments, 3, &out)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, segments)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here is the result: {\"a\":1} hope that helps", `{"a":1}`},
		{"no json here", "no json here"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractJSON(tt.in))
	}
}
