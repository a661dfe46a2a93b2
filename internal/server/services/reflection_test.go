package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/ai"
	"github.com/dmitrijs2005/moodjournal/internal/server/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls int
	got   []ai.Message
	out   *ai.Completion
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []ai.Message) (*ai.Completion, error) {
	f.calls++
	f.got = messages
	return f.out, f.err
}

func TestBuildMessages(t *testing.T) {
	msgs := BuildMessages(ReflectRequest{
		Entry:         "I'm tired",
		Mood:          "sad",
		MemoryContext: "On 5/1/2025, you wrote: \"ok\" (Mood: neutral)",
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, ai.Message{Role: "system", Content: "You are a helpful AI memory companion journaling assistant."}, msgs[0])
	assert.Equal(t, "user", msgs[1].Role)
	assert.Equal(t,
		"Here is my journal entry: \"I'm tired\"\n\nMood: sad\n\nMemory:\nOn 5/1/2025, you wrote: \"ok\" (Mood: neutral)",
		msgs[1].Content)
}

func TestReflect_ReturnsProviderPayload(t *testing.T) {
	raw := json.RawMessage(`{"choices":[{"message":{"role":"assistant","content":"Be gentle with yourself."}}]}`)
	c := &fakeCompleter{out: &ai.Completion{Raw: raw, Content: "Be gentle with yourself."}}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := NewReflectionService(c, logging.Discard(), m)

	got, err := s.Reflect(context.Background(), ReflectRequest{Entry: "I'm tired", Mood: "sad"})
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, "Here is my journal entry: \"I'm tired\"\n\nMood: sad\n\nMemory:\n", c.got[1].Content)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reflections.WithLabelValues(metrics.OutcomeOK)))
}

func TestReflect_ValidatesBeforeOutboundCall(t *testing.T) {
	c := &fakeCompleter{}
	s := NewReflectionService(c, logging.Discard(), nil)

	for _, req := range []ReflectRequest{
		{Entry: "", Mood: "sad"},
		{Entry: "text", Mood: ""},
		{Entry: "  ", Mood: " "},
	} {
		_, err := s.Reflect(context.Background(), req)
		require.ErrorIs(t, err, common.ErrorValidation)
	}
	assert.Zero(t, c.calls)
}

func TestReflect_UpstreamFailure(t *testing.T) {
	c := &fakeCompleter{err: fmt.Errorf("%w: invalid response from provider", common.ErrorUpstream)}
	s := NewReflectionService(c, logging.Discard(), nil)

	got, err := s.Reflect(context.Background(), ReflectRequest{Entry: "I'm tired", Mood: "sad"})
	require.ErrorIs(t, err, common.ErrorUpstream)
	assert.Nil(t, got)
}
