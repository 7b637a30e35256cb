// Package session holds per-user conversation state and the turn-based
// chat machine that drives the virtual analyst.
package session

import "time"

// Role tags one side of the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting opens every conversation and is what Clear resets to.
const Greeting = "Hola, soy tu analista estratégico. ¿Qué necesitas evaluar?"

// LongHistoryThreshold is the turn count past which the UI suggests
// clearing the chat.
const LongHistoryThreshold = 10

// Turn is one message in a conversation.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// Conversation is the ordered turn history for one session. It is not
// safe for concurrent use on its own; State serializes access.
type Conversation struct {
	turns []Turn
}

// NewConversation starts a conversation with the assistant greeting.
func NewConversation() *Conversation {
	c := &Conversation{}
	c.reset()
	return c
}

func (c *Conversation) reset() {
	c.turns = []Turn{{Role: RoleAssistant, Text: Greeting, Time: time.Now()}}
}

// Append adds a turn.
func (c *Conversation) Append(role Role, text string) {
	c.turns = append(c.turns, Turn{Role: role, Text: text, Time: time.Now()})
}

// Clear resets the history to the single greeting turn.
func (c *Conversation) Clear() {
	c.reset()
}

// Turns returns a copy of the history.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int { return len(c.turns) }

// AwaitingResponse reports whether the most recent turn is a user turn
// still waiting for the assistant.
func (c *Conversation) AwaitingResponse() bool {
	return len(c.turns) > 0 && c.turns[len(c.turns)-1].Role == RoleUser
}

// Long reports whether the history passed the advisory length threshold.
func (c *Conversation) Long() bool {
	return len(c.turns) > LongHistoryThreshold
}
