package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/announcement"
	"github.com/cnfl/fantasy-cricket/internal/domain/chat"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// CommunicationService covers announcements and the admin-participant chat.
type CommunicationService struct {
	store  *store.Store
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewCommunicationService(st *store.Store, idGen idgen.Generator, logger *logging.Logger) *CommunicationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CommunicationService{
		store:  st,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// PostAnnouncement publishes a message to one scope.
func (s *CommunicationService) PostAnnouncement(ctx context.Context, message string, scope announcement.Scope) (announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "CommunicationService.PostAnnouncement")
	defer span.End()

	announcementID, err := s.idGen.NewID()
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("generate announcement id: %w", err)
	}

	a := announcement.Announcement{
		ID:        announcementID,
		Message:   strings.TrimSpace(message),
		Scope:     scope,
		CreatedAt: s.now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return announcement.Announcement{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.store.Dispatch(store.AddAnnouncement{Announcement: a})
	s.logger.InfoContext(ctx, "announcement posted", "announcement_id", a.ID, "scope", a.Scope)
	return a, nil
}

func (s *CommunicationService) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	ctx, span := startUsecaseSpan(ctx, "CommunicationService.DeleteAnnouncement")
	defer span.End()

	found := false
	for _, a := range s.store.Snapshot().Announcements {
		if a.ID == announcementID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: announcement=%s", ErrNotFound, announcementID)
	}

	s.store.Dispatch(store.DeleteAnnouncement{ID: announcementID})
	s.logger.InfoContext(ctx, "announcement deleted", "announcement_id", announcementID)
	return nil
}

// ListAnnouncements filters by scope: the public surface sees only public
// announcements, authenticated participants see both scopes.
func (s *CommunicationService) ListAnnouncements(ctx context.Context, includeParticipant bool) ([]announcement.Announcement, error) {
	_, span := startUsecaseSpan(ctx, "CommunicationService.ListAnnouncements")
	defer span.End()

	snapshot := s.store.Snapshot()
	out := make([]announcement.Announcement, 0, len(snapshot.Announcements))
	for _, a := range snapshot.Announcements {
		if a.Scope == announcement.ScopePublic || includeParticipant {
			out = append(out, a)
		}
	}
	return out, nil
}

// SendMessage posts one chat message. Participants always talk to the
// admin side; admins address a participant by id.
func (s *CommunicationService) SendMessage(ctx context.Context, actor user.Principal, receiverID, body string) (chat.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "CommunicationService.SendMessage")
	defer span.End()

	senderID := actor.UserID
	if actor.IsAdmin() {
		senderID = chat.AdminPeerID
		if _, ok := s.store.Snapshot().UserByID(receiverID); !ok {
			return chat.Message{}, fmt.Errorf("%w: user=%s", ErrNotFound, receiverID)
		}
	} else {
		receiverID = chat.AdminPeerID
	}

	messageID, err := s.idGen.NewID()
	if err != nil {
		return chat.Message{}, fmt.Errorf("generate message id: %w", err)
	}

	m := chat.Message{
		ID:         messageID,
		SenderID:   senderID,
		SenderName: actor.FullName,
		ReceiverID: receiverID,
		Body:       strings.TrimSpace(body),
		CreatedAt:  s.now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return chat.Message{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.store.Dispatch(store.AddChatMessage{Message: m})
	return m, nil
}

// Thread returns one participant's conversation in send order. Participants
// may only read their own thread.
func (s *CommunicationService) Thread(ctx context.Context, actor user.Principal, participantID string) ([]chat.Message, error) {
	_, span := startUsecaseSpan(ctx, "CommunicationService.Thread")
	defer span.End()

	if !actor.IsAdmin() {
		participantID = actor.UserID
	}

	snapshot := s.store.Snapshot()
	out := make([]chat.Message, 0)
	for _, m := range snapshot.ChatMessages {
		if m.ThreadKey() == participantID {
			out = append(out, m)
		}
	}
	return out, nil
}

// Threads lists the participant ids with at least one message, admin use.
func (s *CommunicationService) Threads(ctx context.Context) ([]string, error) {
	_, span := startUsecaseSpan(ctx, "CommunicationService.Threads")
	defer span.End()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, m := range s.store.Snapshot().ChatMessages {
		key := m.ThreadKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}
