package domain

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_builder_service.go -package mocks github.com/mailforge/mailforge/internal/domain BuilderService
//go:generate mockgen -destination mocks/mock_template_creator.go -package mocks github.com/mailforge/mailforge/internal/domain TemplateCreator
//go:generate mockgen -destination mocks/mock_http_client.go -package mocks github.com/mailforge/mailforge/internal/domain HTTPClient

// Messages shown by the builder banner
const (
	MessageTemplateNameRequired = "Please enter a template name"
	MessageSubjectRequired      = "Please enter an email subject"
	MessageBlocksRequired       = "Please add at least one component to your template"
	MessageTemplateSaved        = "Template saved successfully!"
	MessageTemplateSaveFailed   = "Error saving template"
)

// DefaultMessageTTL is how long a banner message stays visible
const DefaultMessageTTL = 5 * time.Second

// MessageType is the severity of a banner message
type MessageType string

const (
	MessageTypeSuccess MessageType = "success"
	MessageTypeError   MessageType = "error"
)

// Message is a transient, self-dismissing banner
type Message struct {
	Text      string      `json:"text"`
	Type      MessageType `json:"type"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// IsZero reports whether no message is set
func (m Message) IsZero() bool {
	return m.Text == ""
}

// Session is the state of one template builder: the document being edited,
// the selected block, the palette entry being dragged, the save guard and the banner.
type Session struct {
	ID              string        `json:"id"`
	Document        *Document     `json:"document"`
	SelectedBlockID *int64        `json:"selected_block_id,omitempty"`
	Dragged         *PaletteEntry `json:"dragged,omitempty"`
	Saving          bool          `json:"saving"`
	Message         Message       `json:"message"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewSession returns a session over an empty document
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Document:  NewDocument(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StartDrag marks a palette entry as being dragged
func (s *Session) StartDrag(kind BlockKind) error {
	entry, err := PaletteEntryFor(kind)
	if err != nil {
		return err
	}
	s.Dragged = &entry
	return nil
}

// CancelDrag clears the dragged palette entry
func (s *Session) CancelDrag() {
	s.Dragged = nil
}

// Drop inserts the dragged palette entry at the position under cursorY.
// Without a dragged entry it does nothing and returns false.
func (s *Session) Drop(cursorY float64, bounds []BlockBounds) (Block, bool, error) {
	if s.Dragged == nil {
		return Block{}, false, nil
	}
	index := InsertionIndex(cursorY, bounds, s.Document.Len())
	return s.dropAt(index)
}

// DropAt inserts the dragged palette entry at an explicit index
func (s *Session) DropAt(index int) (Block, bool, error) {
	if s.Dragged == nil {
		return Block{}, false, nil
	}
	return s.dropAt(index)
}

func (s *Session) dropAt(index int) (Block, bool, error) {
	block, err := s.Document.InsertBlock(index, s.Dragged.Kind)
	if err != nil {
		return Block{}, false, err
	}
	s.Dragged = nil
	return block, true, nil
}

// Select marks a block as selected. It returns false when the id is unknown.
func (s *Session) Select(id int64) bool {
	if s.Document.IndexOf(id) < 0 {
		return false
	}
	selected := id
	s.SelectedBlockID = &selected
	return true
}

// ClearSelection deselects any block
func (s *Session) ClearSelection() {
	s.SelectedBlockID = nil
}

// SelectedBlock returns the currently selected block
func (s *Session) SelectedBlock() (Block, bool) {
	if s.SelectedBlockID == nil {
		return Block{}, false
	}
	return s.Document.Block(*s.SelectedBlockID)
}

// DeleteBlock removes a block and clears the selection if it pointed at it
func (s *Session) DeleteBlock(id int64) bool {
	if !s.Document.DeleteBlock(id) {
		return false
	}
	if s.SelectedBlockID != nil && *s.SelectedBlockID == id {
		s.SelectedBlockID = nil
	}
	return true
}

// SetMetadata updates the template name and subject
func (s *Session) SetMetadata(name, subject string) {
	s.Document.Name = name
	s.Document.Subject = subject
}

// ValidateForSave checks that the document can be stored
func (s *Session) ValidateForSave() error {
	if strings.TrimSpace(s.Document.Name) == "" {
		return NewValidationError(MessageTemplateNameRequired)
	}
	if strings.TrimSpace(s.Document.Subject) == "" {
		return NewValidationError(MessageSubjectRequired)
	}
	if s.Document.Len() == 0 {
		return NewValidationError(MessageBlocksRequired)
	}
	return nil
}

// Reset empties the builder after a successful save
func (s *Session) Reset() {
	s.Document = NewDocument()
	s.SelectedBlockID = nil
	s.Dragged = nil
}

// Notify sets the banner message, visible until now+ttl
func (s *Session) Notify(text string, messageType MessageType, now time.Time, ttl time.Duration) {
	s.Message = Message{
		Text:      text,
		Type:      messageType,
		ExpiresAt: now.Add(ttl),
	}
}

// CurrentMessage returns the banner, clearing it once it has expired
func (s *Session) CurrentMessage(now time.Time) Message {
	if !s.Message.IsZero() && !now.Before(s.Message.ExpiresAt) {
		s.Message = Message{}
	}
	return s.Message
}

// Snapshot returns a deep copy safe to hand out of the session lock
func (s *Session) Snapshot() *Session {
	out := *s
	out.Document = s.Document.Clone()
	if s.SelectedBlockID != nil {
		id := *s.SelectedBlockID
		out.SelectedBlockID = &id
	}
	if s.Dragged != nil {
		entry := *s.Dragged
		entry.Defaults = entry.Defaults.Clone()
		out.Dragged = &entry
	}
	return &out
}

// ExportedTemplate is a generated HTML file offered for download
type ExportedTemplate struct {
	Filename string `json:"filename"`
	HTML     string `json:"html"`
}

// SaveResult reports the outcome of a builder save
type SaveResult struct {
	Template *Template `json:"template,omitempty"`
	Session  *Session  `json:"session"`
}

// DropRequest drops the dragged palette entry (or Kind, when set) onto the canvas.
// Index, when set, takes precedence over the cursor position.
type DropRequest struct {
	SessionID string        `json:"session_id"`
	Kind      BlockKind     `json:"kind,omitempty"`
	CursorY   float64       `json:"cursor_y"`
	Bounds    []BlockBounds `json:"bounds,omitempty"`
	Index     *int          `json:"index,omitempty"`
}

func (r *DropRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if r.Kind != "" {
		if err := r.Kind.Validate(); err != nil {
			return NewValidationError(err.Error())
		}
	}
	for i, b := range r.Bounds {
		if b.Height < 0 {
			return NewValidationError(fmt.Sprintf("bounds[%d].height must not be negative", i))
		}
	}
	return nil
}

// UpdatePropertyRequest replaces one property of a block
type UpdatePropertyRequest struct {
	SessionID string `json:"session_id"`
	BlockID   int64  `json:"block_id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
}

func (r *UpdatePropertyRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if r.Name == "" {
		return NewValidationError("name is required")
	}
	return nil
}

// MoveBlockRequest swaps a block with its neighbour
type MoveBlockRequest struct {
	SessionID string        `json:"session_id"`
	BlockID   int64         `json:"block_id"`
	Direction MoveDirection `json:"direction"`
}

func (r *MoveBlockRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return r.Direction.Validate()
}

// BlockRequest targets a single block of a session
type BlockRequest struct {
	SessionID string `json:"session_id"`
	BlockID   int64  `json:"block_id"`
}

func (r *BlockRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return nil
}

// DragRequest starts dragging a palette entry
type DragRequest struct {
	SessionID string    `json:"session_id"`
	Kind      BlockKind `json:"kind"`
}

func (r *DragRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if err := r.Kind.Validate(); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// SetMetadataRequest sets the template name and subject
type SetMetadataRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
}

func (r *SetMetadataRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if len(r.Name) > 255 {
		return NewValidationError("name length must be at most 255")
	}
	if len(r.Subject) > 255 {
		return NewValidationError("subject length must be at most 255")
	}
	return nil
}

// SessionRequest targets a whole session
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *SessionRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return nil
}

// MutationResult is returned by builder operations that may be a no-op
type MutationResult struct {
	Changed bool     `json:"changed"`
	Block   *Block   `json:"block,omitempty"`
	Session *Session `json:"session"`
}

// TemplateCreator persists a generated template. It is the builder's only collaborator.
type TemplateCreator interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error)
}

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BuilderService manages template builder sessions
type BuilderService interface {
	Palette() []PaletteEntry
	CreateSession(ctx context.Context) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	CloseSession(ctx context.Context, sessionID string) error
	StartDrag(ctx context.Context, req DragRequest) (*Session, error)
	CancelDrag(ctx context.Context, sessionID string) (*Session, error)
	Drop(ctx context.Context, req DropRequest) (*MutationResult, error)
	Select(ctx context.Context, req BlockRequest) (*MutationResult, error)
	UpdateProperty(ctx context.Context, req UpdatePropertyRequest) (*MutationResult, error)
	Move(ctx context.Context, req MoveBlockRequest) (*MutationResult, error)
	Delete(ctx context.Context, req BlockRequest) (*MutationResult, error)
	SetMetadata(ctx context.Context, req SetMetadataRequest) (*Session, error)
	Save(ctx context.Context, sessionID string) (*SaveResult, error)
	Preview(ctx context.Context, sessionID string) (string, error)
	Export(ctx context.Context, sessionID string) (*ExportedTemplate, error)
}
