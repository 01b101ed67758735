package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/media"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/notify"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

const defaultMessagePage = 50

type ConversationService struct {
	convs    repository.ConversationRepository
	messages repository.MessageRepository
	accounts repository.AccountRepository
	coord    *media.Coordinator
	sink     notify.Sink
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewConversationService(
	convs repository.ConversationRepository,
	messages repository.MessageRepository,
	accounts repository.AccountRepository,
	coord *media.Coordinator,
	sink notify.Sink,
	log *zap.SugaredLogger,
) *ConversationService {
	return &ConversationService{
		convs:    convs,
		messages: messages,
		accounts: accounts,
		coord:    coord,
		sink:     sink,
		log:      log,
		now:      time.Now,
	}
}

func (s *ConversationService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	cs, err := s.convs.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing conversations of %s", userID)
	}
	return cs, nil
}

// ListMessages returns up to limit recent messages in chronological order.
// Only participants may read a conversation.
func (s *ConversationService) ListMessages(ctx context.Context, userID, conversationID string, limit int64) ([]models.Message, error) {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessagePage
	}
	msgs, err := s.messages.ListByConversation(ctx, conv.ID, limit)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing messages of %s", conversationID)
	}
	return msgs, nil
}

// SendMessage appends a message, mirrors it onto the conversation preview
// and notifies the other participant. Attachments are uploaded first and
// rolled back when persisting the message fails.
func (s *ConversationService) SendMessage(ctx context.Context, senderID, conversationID, content string, attachments []storage.File) (*models.Message, error) {
	if content == "" && len(attachments) == 0 {
		return nil, apperrors.InvalidArgument("message needs content or attachments")
	}
	conv, err := s.participantConversation(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	groups := attachmentGroups(attachments)

	msg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		ReadBy:         []string{senderID},
		CreatedAt:      s.now(),
	}
	_, err = s.coord.Run(ctx, groups, func(ctx context.Context, urls map[string][]string) error {
		for _, g := range groups {
			msg.MediaURLs = append(msg.MediaURLs, urls[g.Folder]...)
		}
		if err := s.messages.Create(ctx, msg); err != nil {
			return apperrors.Upstream(err, "creating message")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	conv.LastMessage = previewOf(msg)
	conv.LastMessageAt = &msg.CreatedAt
	conv.UpdatedAt = msg.CreatedAt
	if err := s.convs.Update(ctx, conv); err != nil {
		s.log.Errorw("updating conversation preview failed", "conversation", conv.ID, "error", err)
	}

	senderName := ""
	if sender, err := s.accounts.GetByID(ctx, senderID); err == nil && sender != nil {
		senderName = sender.Name
	}
	for _, pid := range conv.ParticipantIDs {
		if pid == senderID {
			continue
		}
		s.sink.PushToUser(pid, notify.Event{
			Type:           notify.EventNewMessage,
			Timestamp:      msg.CreatedAt,
			ConversationID: conv.ID,
			SenderID:       senderID,
			SenderName:     senderName,
			Content:        previewOf(msg),
		})
	}
	return msg, nil
}

func (s *ConversationService) participantConversation(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading conversation %s", conversationID)
	}
	if conv == nil {
		return nil, apperrors.NotFound("conversation %s not found", conversationID)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.Forbidden("not a participant of conversation %s", conversationID)
	}
	return conv, nil
}

// attachmentGroups routes each attachment to the folder matching its
// content type, preserving per-folder order. Validation happens when the
// groups are uploaded.
func attachmentGroups(files []storage.File) []media.Group {
	byFolder := make(map[string][]storage.File)
	var order []string
	for _, f := range files {
		folder := storage.FolderForContentType(f.ContentType)
		if _, seen := byFolder[folder]; !seen {
			order = append(order, folder)
		}
		byFolder[folder] = append(byFolder[folder], f)
	}
	groups := make([]media.Group, 0, len(order))
	for _, folder := range order {
		groups = append(groups, media.Group{Folder: folder, Files: byFolder[folder]})
	}
	return groups
}

func previewOf(m *models.Message) string {
	if m.Content != "" {
		return m.Content
	}
	return "[attachment]"
}
