// internal/actor/message.go
//
// Identities and messages exchanged through the runtime.
// Defines:
//   - ID: identity of a program or an external participant (player).
//   - MessageID: opaque identifier of a single message, used for correlation.
//   - Message: the envelope delivered to programs and mailboxes.

package actor

import (
	"errors"
	"unicode"

	"github.com/google/uuid"
)

// maxIDLen bounds actor identities so they stay usable as map keys, log
// fields and database columns.
const maxIDLen = 64

// ErrInvalidID is returned when an actor identity is not well-formed.
var ErrInvalidID = errors.New("invalid actor id")

// ID identifies a program registered with a System or an external
// participant that only receives messages through its mailbox.
type ID string

// Validate reports whether id is non-empty, at most 64 bytes long and free
// of whitespace and control characters.
func (id ID) Validate() error {
	if id == "" || len(id) > maxIDLen {
		return ErrInvalidID
	}
	for _, r := range string(id) {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidID
		}
	}
	return nil
}

func (id ID) String() string { return string(id) }

// MessageID is an opaque token linking a message to its reply.
type MessageID string

// NewMessageID returns a fresh random identifier.
func NewMessageID() MessageID { return MessageID(uuid.NewString()) }

func (id MessageID) String() string { return string(id) }

// Message is a single envelope moving through the System.
type Message struct {
	ID      MessageID
	Source  ID
	Dest    ID
	ReplyTo MessageID // set only on replies; the ID of the answered message
	Payload any
	Round   uint64 // round in which the message was routed
}

// IsReply reports whether m answers an earlier message.
func (m Message) IsReply() bool { return m.ReplyTo != "" }
