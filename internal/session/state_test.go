package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerer struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAnswerer) Ask(_ context.Context, q string) (string, error) {
	f.asked = append(f.asked, q)
	return f.answer, f.err
}

func TestConversationStartsWithGreeting(t *testing.T) {
	c := NewConversation()
	require.Equal(t, 1, c.Len())
	assert.Equal(t, RoleAssistant, c.Turns()[0].Role)
	assert.Equal(t, Greeting, c.Turns()[0].Text)
	assert.False(t, c.AwaitingResponse())
}

func TestSubmitResolveRound(t *testing.T) {
	s := NewState()
	ans := &fakeAnswerer{answer: "Las secciones 101 y 102 destacan."}

	require.NoError(t, s.Submit("¿Dónde conviene reforzar?"))

	turns := s.Turns()
	require.Equal(t, 2, len(turns))
	assert.Equal(t, RoleUser, turns[1].Role)

	turn := s.Resolve(context.Background(), ans)
	assert.Equal(t, RoleAssistant, turn.Role)
	assert.Equal(t, "Las secciones 101 y 102 destacan.", turn.Text)
	assert.Equal(t, []string{"¿Dónde conviene reforzar?"}, ans.asked)

	// Exactly one assistant turn appended, machine back to idle.
	turns = s.Turns()
	require.Equal(t, 3, len(turns))
	require.NoError(t, s.Submit("otra pregunta"))
}

func TestResolveErrorBecomesAssistantTurn(t *testing.T) {
	s := NewState()
	ans := &fakeAnswerer{err: fmt.Errorf("query execution failed")}

	require.NoError(t, s.Submit("pregunta"))
	turn := s.Resolve(context.Background(), ans)

	assert.Equal(t, RoleAssistant, turn.Role)
	assert.Contains(t, turn.Text, "query execution failed")

	// The conversation stays usable for the next question.
	require.NoError(t, s.Submit("siguiente"))
}

func TestResolveWithoutAgent(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Submit("pregunta"))
	turn := s.Resolve(context.Background(), nil)
	assert.Equal(t, NoAgentMessage, turn.Text)
}

func TestSubmitWhileBusy(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Submit("primera"))
	assert.ErrorIs(t, s.Submit("segunda"), ErrBusy)

	s.Resolve(context.Background(), &fakeAnswerer{answer: "ok"})
	require.NoError(t, s.Submit("segunda"))
}

func TestResolveIdleIsNoOp(t *testing.T) {
	s := NewState()
	turn := s.Resolve(context.Background(), &fakeAnswerer{answer: "ok"})
	assert.Equal(t, Turn{}, turn)
	assert.Equal(t, 1, len(s.Turns()))
}

func TestClearFromAnyState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Submit("pregunta"))
	s.Resolve(context.Background(), &fakeAnswerer{answer: "respuesta"})
	require.NoError(t, s.Submit("otra"))

	// Clear while awaiting_response still resets to one greeting turn.
	s.Clear()
	turns := s.Turns()
	require.Equal(t, 1, len(turns))
	assert.Equal(t, Greeting, turns[0].Text)

	// And the machine is idle again.
	require.NoError(t, s.Submit("después de limpiar"))
}

type answererFunc func(context.Context, string) (string, error)

func (f answererFunc) Ask(ctx context.Context, q string) (string, error) { return f(ctx, q) }

// A clear that lands while the agent call is in flight must win: the
// late answer is dropped instead of being appended after the greeting.
func TestClearDuringResolveDropsAnswer(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Submit("pregunta"))

	turn := s.Resolve(context.Background(), answererFunc(func(context.Context, string) (string, error) {
		s.Clear()
		return "respuesta tardía", nil
	}))
	assert.Equal(t, Turn{}, turn)

	turns := s.Turns()
	require.Equal(t, 1, len(turns))
	assert.Equal(t, Greeting, turns[0].Text)

	// The machine is idle for the next question.
	require.NoError(t, s.Submit("nueva pregunta"))
}

func TestLongHistory(t *testing.T) {
	s := NewState()
	for i := 0; i < 6; i++ {
		require.NoError(t, s.Submit(fmt.Sprintf("pregunta %d", i)))
		s.Resolve(context.Background(), &fakeAnswerer{answer: "ok"})
	}
	assert.True(t, s.Long())
	s.Clear()
	assert.False(t, s.Long())
}

func TestManagerCreateOnFirstAccess(t *testing.T) {
	m := NewManager()
	a := m.Get("sess-a")
	b := m.Get("sess-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Get("sess-a"))
	assert.Equal(t, 2, m.Len())
}
