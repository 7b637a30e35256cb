package session

import (
	"context"
	"fmt"
	"sync"
)

// Answerer is what the state machine needs from the agent gateway: one
// question in, one narrated answer out.
type Answerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

// ErrBusy is returned when a question arrives while another one is still
// being answered for the same session.
var ErrBusy = fmt.Errorf("a question is already being answered")

// NoAgentMessage is the steady degraded answer when no agent could be
// constructed.
const NoAgentMessage = "El analista virtual no está disponible en este momento. El mapa y el panel de detalle siguen funcionando."

// State is the chat machine for one session: idle, or awaiting a
// response after a user turn was committed. Submit appends the user turn
// (idle -> awaiting_response); Resolve produces exactly one assistant
// turn and returns to idle. The two steps are separate so the user's
// message is committed to the history before the slow agent call runs.
type State struct {
	mu   sync.Mutex
	conv *Conversation
	busy bool
	gen  uint64 // bumped by Clear; in-flight answers for an older gen are dropped
}

// NewState creates a session in the idle state with a greeted
// conversation.
func NewState() *State {
	return &State{conv: NewConversation()}
}

// Submit appends a user turn and moves to awaiting_response. It fails
// with ErrBusy when a previous question has not resolved yet.
func (s *State) Submit(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || s.conv.AwaitingResponse() {
		return ErrBusy
	}
	s.conv.Append(RoleUser, text)
	s.busy = true
	return nil
}

// Resolve answers the pending user turn through the answerer and appends
// exactly one assistant turn, error text included, before returning to
// idle. A nil answerer yields the degraded no-agent answer. Calling
// Resolve with nothing pending is a no-op.
func (s *State) Resolve(ctx context.Context, answerer Answerer) Turn {
	s.mu.Lock()
	if !s.conv.AwaitingResponse() {
		s.busy = false
		s.mu.Unlock()
		return Turn{}
	}
	question := s.conv.turns[len(s.conv.turns)-1].Text
	gen := s.gen
	s.mu.Unlock()

	var text string
	if answerer == nil {
		text = NoAgentMessage
	} else if answer, err := answerer.Ask(ctx, question); err != nil {
		text = "Lo siento, no pude completar el análisis: " + err.Error()
	} else {
		text = answer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.gen != gen {
		// The conversation was cleared while the answer was in flight;
		// the question it belongs to no longer exists.
		return Turn{}
	}
	s.conv.Append(RoleAssistant, text)
	return s.conv.turns[len(s.conv.turns)-1]
}

// Clear resets the conversation to the greeting from any state.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Clear()
	s.busy = false
	s.gen++
}

// Turns returns a copy of the conversation history.
func (s *State) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Turns()
}

// Long reports whether the history passed the advisory length threshold.
func (s *State) Long() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Long()
}

// Manager hands out session states keyed by session ID, creating them on
// first access. Sessions live for the process lifetime; there is no
// eviction.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Get returns the state for id, creating it if needed.
func (m *Manager) Get(id string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewState()
	m.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
