package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/cache"
	"github.com/mailforge/mailforge/pkg/logger"
	"github.com/mailforge/mailforge/pkg/tracing"
)

// DefaultSessionTTL is how long an idle builder session is kept
const DefaultSessionTTL = 2 * time.Hour

// sessionEntry guards one session. Sessions never share an entry.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// BuilderOption configures a BuilderService
type BuilderOption func(*BuilderService)

// WithBuilderClock replaces time.Now for sessions and banner messages
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(s *BuilderService) {
		s.now = now
	}
}

// WithCleanupInterval sets how often expired sessions are swept
func WithCleanupInterval(interval time.Duration) BuilderOption {
	return func(s *BuilderService) {
		s.cleanupInterval = interval
	}
}

// BuilderService keeps template builder sessions in memory and saves their
// documents through a TemplateCreator
type BuilderService struct {
	sessions        *cache.InMemoryCache[*sessionEntry]
	creator         domain.TemplateCreator
	sessionTTL      time.Duration
	messageTTL      time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	tracer          tracing.Tracer
	logger          logger.Logger
}

func NewBuilderService(creator domain.TemplateCreator, sessionTTL, messageTTL time.Duration, logger logger.Logger, opts ...BuilderOption) *BuilderService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if messageTTL <= 0 {
		messageTTL = domain.DefaultMessageTTL
	}

	s := &BuilderService{
		creator:         creator,
		sessionTTL:      sessionTTL,
		messageTTL:      messageTTL,
		cleanupInterval: time.Minute,
		now:             time.Now,
		tracer:          tracing.GetTracer(),
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = cache.NewInMemoryCache[*sessionEntry](s.cleanupInterval,
		cache.WithClock[*sessionEntry](s.now),
		cache.WithEvictionHandler[*sessionEntry](func(id string, _ *sessionEntry) {
			tracing.RecordSessionDelta(context.Background(), -1)
			s.logger.WithField("session_id", id).Debug("Builder session expired")
		}),
	)

	return s
}

// Close stops the session sweeper
func (s *BuilderService) Close() {
	s.sessions.Stop()
}

func (s *BuilderService) Palette() []domain.PaletteEntry {
	return domain.Palette()
}

func (s *BuilderService) CreateSession(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession(uuid.NewString(), s.now())
	s.sessions.Set(session.ID, &sessionEntry{session: session}, s.sessionTTL)

	tracing.RecordSessionDelta(ctx, 1)
	s.logger.WithField("session_id", session.ID).Debug("Builder session created")

	return session.Snapshot(), nil
}

func (s *BuilderService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.withSession(sessionID, func(*domain.Session) error { return nil })
}

func (s *BuilderService) CloseSession(ctx context.Context, sessionID string) error {
	if !s.sessions.Delete(sessionID) {
		return &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	tracing.RecordSessionDelta(ctx, -1)
	return nil
}

func (s *BuilderService) StartDrag(ctx context.Context, req domain.DragRequest) (*domain.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutateSession(req.SessionID, func(session *domain.Session) error {
		return session.StartDrag(req.Kind)
	})
}

func (s *BuilderService) CancelDrag(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.mutateSession(sessionID, func(session *domain.Session) error {
		session.CancelDrag()
		return nil
	})
}

// Drop inserts the dragged palette entry. When req.Kind is set it is dragged
// first, so a client can drop in one call.
func (s *BuilderService) Drop(ctx context.Context, req domain.DropRequest) (*domain.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.StartServiceSpan(ctx, "BuilderService", "Drop")
	defer span.End()
	s.tracer.AddAttribute(ctx, "session_id", req.SessionID)
	s.tracer.AddAttribute(ctx, "cursor_y", req.CursorY)

	var (
		block   domain.Block
		changed bool
	)
	session, err := s.mutateSession(req.SessionID, func(session *domain.Session) error {
		if req.Kind != "" {
			if err := session.StartDrag(req.Kind); err != nil {
				return err
			}
		}

		var err error
		if req.Index != nil {
			block, changed, err = session.DropAt(*req.Index)
		} else {
			block, changed, err = session.Drop(req.CursorY, req.Bounds)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &domain.MutationResult{Changed: changed, Session: session}
	if changed {
		result.Block = &block
	}
	return result, nil
}

func (s *BuilderService) Select(ctx context.Context, req domain.BlockRequest) (*domain.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var changed bool
	session, err := s.mutateSession(req.SessionID, func(session *domain.Session) error {
		changed = session.Select(req.BlockID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.MutationResult{Changed: changed, Session: session}, nil
}

func (s *BuilderService) UpdateProperty(ctx context.Context, req domain.UpdatePropertyRequest) (*domain.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var changed bool
	session, err := s.mutateSession(req.SessionID, func(session *domain.Session) error {
		var err error
		changed, err = session.Document.UpdateProperty(req.BlockID, req.Name, req.Value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mutationResult(session, req.BlockID, changed), nil
}

func (s *BuilderService) Move(ctx context.Context, req domain.MoveBlockRequest) (*domain.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var changed bool
	session, err := s.mutateSession(req.SessionID, func(session *domain.Session) error {
		var err error
		changed, err = session.Document.MoveBlock(req.BlockID, req.Direction)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mutationResult(session, req.BlockID, changed), nil
}

func (s *BuilderService) Delete(ctx context.Context, req domain.BlockRequest) (*domain.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var changed bool
	session, err := s.mutateSession(req.SessionID, func(session *domain.Session) error {
		changed = session.DeleteBlock(req.BlockID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.MutationResult{Changed: changed, Session: session}, nil
}

func (s *BuilderService) SetMetadata(ctx context.Context, req domain.SetMetadataRequest) (*domain.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutateSession(req.SessionID, func(session *domain.Session) error {
		session.SetMetadata(req.Name, req.Subject)
		return nil
	})
}

// Save validates the document and hands it to the TemplateCreator. The session
// lock is released during the store call; a second Save on the same session
// is rejected until the first returns.
func (s *BuilderService) Save(ctx context.Context, sessionID string) (*domain.SaveResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "BuilderService", "Save")
	defer span.End()
	s.tracer.AddAttribute(ctx, "session_id", sessionID)

	entry, err := s.entry(sessionID)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	entry.mu.Lock()
	session := entry.session
	if session.Saving {
		entry.mu.Unlock()
		s.tracer.MarkSpanError(ctx, domain.ErrSaveInProgress)
		return nil, domain.ErrSaveInProgress
	}
	if err := session.ValidateForSave(); err != nil {
		var validationErr domain.ValidationError
		errors.As(err, &validationErr)
		session.Notify(validationErr.Message, domain.MessageTypeError, s.now(), s.messageTTL)
		session.UpdatedAt = s.now()
		entry.mu.Unlock()
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}
	req := domain.CreateTemplateRequest{
		TemplateName: session.Document.Name,
		Subject:      session.Document.Subject,
		HTMLContent:  domain.GenerateHTML(session.Document),
	}
	session.Saving = true
	entry.mu.Unlock()

	template, saveErr := s.creator.CreateTemplate(ctx, req)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session.Saving = false
	session.UpdatedAt = s.now()

	if saveErr != nil {
		s.tracer.MarkSpanError(ctx, saveErr)
		tracing.RecordSave(ctx, false)

		message := domain.MessageTemplateSaveFailed
		var apiErr *domain.TemplateAPIError
		if errors.As(saveErr, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
		session.Notify(message, domain.MessageTypeError, s.now(), s.messageTTL)

		s.logger.WithFields(map[string]interface{}{
			"session_id":    sessionID,
			"template_name": req.TemplateName,
		}).Error(fmt.Sprintf("Failed to save template: %v", saveErr))
		return nil, fmt.Errorf("failed to save template: %w", saveErr)
	}

	tracing.RecordSave(ctx, true)
	session.Notify(domain.MessageTemplateSaved, domain.MessageTypeSuccess, s.now(), s.messageTTL)
	session.Reset()

	return &domain.SaveResult{
		Template: template,
		Session:  session.Snapshot(),
	}, nil
}

// Preview returns the HTML the session would save
func (s *BuilderService) Preview(ctx context.Context, sessionID string) (string, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return domain.GenerateHTML(session.Document), nil
}

// Export returns the HTML with a download filename derived from the template name
func (s *BuilderService) Export(ctx context.Context, sessionID string) (*domain.ExportedTemplate, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &domain.ExportedTemplate{
		Filename: domain.ExportFilename(session.Document.Name),
		HTML:     domain.GenerateHTML(session.Document),
	}, nil
}

func (s *BuilderService) entry(sessionID string) (*sessionEntry, error) {
	entry, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	s.sessions.Touch(sessionID, s.sessionTTL)
	return entry, nil
}

// withSession runs fn under the session lock and returns a snapshot of the result
func (s *BuilderService) withSession(sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := fn(entry.session); err != nil {
		return nil, err
	}

	now := s.now()
	entry.session.UpdatedAt = now
	entry.session.CurrentMessage(now)
	return entry.session.Snapshot(), nil
}

// mutateSession is withSession for edits. Edits are rejected while a save is
// in flight, since a successful save resets the document.
func (s *BuilderService) mutateSession(sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	return s.withSession(sessionID, func(session *domain.Session) error {
		if session.Saving {
			return domain.ErrSaveInProgress
		}
		return fn(session)
	})
}

func mutationResult(session *domain.Session, blockID int64, changed bool) *domain.MutationResult {
	result := &domain.MutationResult{Changed: changed, Session: session}
	if changed {
		if block, ok := session.Document.Block(blockID); ok {
			result.Block = &block
		}
	}
	return result
}
