package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/langdocs/assistant/models"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// State is the session's request lifecycle state.
type State string

const (
	// StateIdle means no request is in flight.
	StateIdle State = "idle"
	// StateAwaiting means exactly one chat request is in flight.
	StateAwaiting State = "awaiting-response"
	// StateError means the last request failed; the failed user message has
	// been rolled back and LastError holds the failure message.
	StateError State = "error"
)

// Message is one entry in the conversation. Immutable once appended.
type Message struct {
	ID             string
	Role           Role
	Content        string
	Sources        []models.Source
	ProcessingTime float64
	CreatedAt      time.Time
}

// chatSender is the slice of the API client the session needs.
type chatSender interface {
	SendChatMessage(ctx context.Context, question string, filter models.ServiceFilter) (*models.ChatResponse, error)
}

// Session holds the ordered conversation, the in-flight state, and the active
// service filter. It orchestrates one request at a time: submissions while a
// request is awaiting a response are ignored, and a failed request rolls the
// triggering user message back.
//
// Session is not safe for concurrent use; it models a single-threaded,
// event-driven frontend.
type Session struct {
	sender    chatSender
	messages  []Message
	state     State
	filter    models.ServiceFilter
	lastError string
}

// NewSession creates an idle session with the filter set to "all".
func NewSession(sender chatSender) *Session {
	return &Session{
		sender: sender,
		state:  StateIdle,
		filter: models.FilterAll,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Filter returns the active service filter.
func (s *Session) Filter() models.ServiceFilter {
	return s.filter
}

// SetFilter changes the scope of subsequent submissions. It never issues a
// request and never touches the message list.
func (s *Session) SetFilter(filter models.ServiceFilter) {
	if filter.Valid() {
		s.filter = filter
	}
}

// Messages returns a copy of the conversation in order.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastError returns the failure message from the most recent failed request,
// or "" when the session is not in the error state.
func (s *Session) LastError() string {
	if s.state != StateError {
		return ""
	}
	return s.lastError
}

// Submit sends question with the active filter. Blank questions and
// submissions while a request is already awaiting a response are no-ops.
// On success the list grows by two messages (user, then assistant); on
// failure the user message is rolled back and the error recorded.
func (s *Session) Submit(ctx context.Context, question string) error {
	if s.state == StateAwaiting {
		return nil
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	s.messages = append(s.messages, Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	})
	s.state = StateAwaiting
	s.lastError = ""

	resp, err := s.sender.SendChatMessage(ctx, question, s.filter)
	if err != nil {
		// Roll back the triggering user message; the user may resubmit.
		s.messages = s.messages[:len(s.messages)-1]
		s.state = StateError
		s.lastError = err.Error()
		return err
	}

	s.messages = append(s.messages, Message{
		ID:             uuid.New().String(),
		Role:           RoleAssistant,
		Content:        resp.Answer,
		Sources:        resp.Sources,
		ProcessingTime: resp.ProcessingTime,
		CreatedAt:      time.Now(),
	})
	s.state = StateIdle
	return nil
}
