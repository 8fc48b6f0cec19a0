package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/config"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

const tutorSystemPrompt = `You are a patient tutor for school students. Explain concepts step by step, ask guiding questions instead of giving answers away, and keep replies focused on the student's topic. If school material is provided as context, ground your answer in it.`

// historyWindow bounds how many past messages are replayed to the model.
const historyWindow = 20

type TutorService struct {
	tutorRepo  *repository.TutorRepository
	docRepo    *repository.DocumentRepository
	schoolRepo *repository.SchoolRepository
	ai         *AIClient
	cfg        *config.Config
}

func NewTutorService(tutorRepo *repository.TutorRepository, docRepo *repository.DocumentRepository, schoolRepo *repository.SchoolRepository, ai *AIClient, cfg *config.Config) *TutorService {
	return &TutorService{tutorRepo: tutorRepo, docRepo: docRepo, schoolRepo: schoolRepo, ai: ai, cfg: cfg}
}

type CreateSessionRequest struct {
	Topic string `json:"topic" binding:"omitempty,max=100"`
	Title string `json:"title" binding:"omitempty,max=255"`
}

func (s *TutorService) CreateSession(userID, schoolID uint, req *CreateSessionRequest) (*model.TutorSession, error) {
	title := req.Title
	if title == "" {
		title = "New conversation"
	}
	session := &model.TutorSession{
		UserID:   userID,
		SchoolID: schoolID,
		Title:    title,
		Topic:    req.Topic,
	}
	if err := s.tutorRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *TutorService) ListSessions(userID uint, page, pageSize int) ([]model.TutorSession, int64, error) {
	return s.tutorRepo.ListSessions(userID, page, pageSize)
}

func (s *TutorService) GetSession(sessionID string, userID uint) (*model.TutorSession, []model.TutorMessage, error) {
	session, err := s.tutorRepo.GetSession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, nil, util.ErrSessionNotFound
	}

	messages, err := s.tutorRepo.ListMessages(sessionID, 0)
	if err != nil {
		return nil, nil, err
	}
	return session, messages, nil
}

func (s *TutorService) DeleteSession(sessionID string, userID uint) error {
	return s.tutorRepo.DeleteSession(sessionID, userID)
}

// resolveAPIKey prefers the school's own active key, falling back to the
// platform-wide one.
func (s *TutorService) resolveAPIKey(schoolID uint) (string, error) {
	if schoolID != 0 {
		key, err := s.schoolRepo.GetActiveAPIKey(schoolID)
		if err != nil {
			return "", err
		}
		if key != nil {
			return key.Key, nil
		}
	}
	if s.cfg.AI.APIKey != "" {
		return s.cfg.AI.APIKey, nil
	}
	return "", util.ErrNoActiveAPIKey
}

// buildContext pulls matching school documents into the prompt so the tutor
// can ground its answer in uploaded material.
func (s *TutorService) buildContext(schoolID uint, query string) string {
	terms := significantTerms(query)
	if len(terms) == 0 {
		return ""
	}

	seen := make(map[uint]bool)
	var snippets []string
	for _, term := range terms {
		docs, err := s.docRepo.SearchText(schoolID, term, 2)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true
			snippets = append(snippets, fmt.Sprintf("[%s]\n%s", doc.Title, excerpt(doc.ExtractedText, term, 800)))
			if len(snippets) >= 3 {
				break
			}
		}
		if len(snippets) >= 3 {
			break
		}
	}

	if len(snippets) == 0 {
		return ""
	}
	return "School material:\n\n" + strings.Join(snippets, "\n\n")
}

// significantTerms keeps words long enough to be worth a LIKE search.
func significantTerms(query string) []string {
	fields := strings.Fields(query)
	var terms []string
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()")
		if len(f) >= 5 {
			terms = append(terms, f)
		}
		if len(terms) >= 5 {
			break
		}
	}
	return terms
}

// excerpt returns a window of text around the first occurrence of term. The
// window edges are snapped back to rune boundaries so multi-byte characters
// never get split.
func excerpt(text, term string, size int) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(term))
	if idx < 0 {
		idx = 0
	}
	start := idx - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > len(text) {
		end = len(text)
	}
	start = runeStart(text, start)
	end = runeStart(text, end)
	return text[start:end]
}

// runeStart walks i back to the nearest rune boundary at or before it.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func (s *TutorService) buildMessages(session *model.TutorSession, schoolID uint, userMessage string) ([]ChatMessage, bool, error) {
	history, err := s.tutorRepo.ListMessages(session.ID, historyWindow)
	if err != nil {
		return nil, false, err
	}

	usedDocs := false
	messages := []ChatMessage{{Role: "system", Content: tutorSystemPrompt}}
	if docContext := s.buildContext(schoolID, userMessage); docContext != "" {
		usedDocs = true
		messages = append(messages, ChatMessage{Role: "system", Content: docContext})
	}
	for _, m := range history {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: userMessage})
	return messages, usedDocs, nil
}

func replySource(usedDocs bool) string {
	if usedDocs {
		return model.SourceDocuments
	}
	return model.SourceLLM
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=8000"`
}

// SendMessage runs one blocking tutor turn: persist the user message, call
// the provider, persist and return the reply.
func (s *TutorService) SendMessage(ctx context.Context, sessionID string, userID, schoolID uint, req *SendMessageRequest) (*model.TutorMessage, error) {
	session, err := s.tutorRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	apiKey, err := s.resolveAPIKey(schoolID)
	if err != nil {
		return nil, err
	}

	messages, usedDocs, err := s.buildMessages(session, schoolID, req.Content)
	if err != nil {
		return nil, err
	}

	userMsg := &model.TutorMessage{
		SessionID: sessionID,
		Role:      model.MessageRoleUser,
		Content:   req.Content,
	}
	if err := s.tutorRepo.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	reply, err := s.ai.Chat(ctx, apiKey, messages)
	if err != nil {
		return nil, err
	}

	assistantMsg := &model.TutorMessage{
		SessionID: sessionID,
		Role:      model.MessageRoleAssistant,
		Content:   reply,
		Source:    replySource(usedDocs),
	}
	if err := s.tutorRepo.AppendMessage(assistantMsg); err != nil {
		return nil, err
	}

	s.maybeRetitle(session, req.Content)

	return assistantMsg, nil
}

// StreamMessage is SendMessage with deltas pushed through onDelta as they
// arrive from the provider.
func (s *TutorService) StreamMessage(ctx context.Context, sessionID string, userID, schoolID uint, content string, onDelta func(delta string) error) (*model.TutorMessage, error) {
	session, err := s.tutorRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	apiKey, err := s.resolveAPIKey(schoolID)
	if err != nil {
		return nil, err
	}

	messages, usedDocs, err := s.buildMessages(session, schoolID, content)
	if err != nil {
		return nil, err
	}

	userMsg := &model.TutorMessage{
		SessionID: sessionID,
		Role:      model.MessageRoleUser,
		Content:   content,
	}
	if err := s.tutorRepo.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	reply, err := s.ai.ChatStream(ctx, apiKey, messages, onDelta)
	if reply != "" {
		assistantMsg := &model.TutorMessage{
			SessionID: sessionID,
			Role:      model.MessageRoleAssistant,
			Content:   reply,
			Source:    replySource(usedDocs),
		}
		if saveErr := s.tutorRepo.AppendMessage(assistantMsg); saveErr != nil && err == nil {
			err = saveErr
		}
		s.maybeRetitle(session, content)
		return assistantMsg, err
	}
	return nil, err
}

// truncateTitle caps a session title at 60 runes, counting in runes rather
// than bytes so non-ASCII text is not cut mid-character.
func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= 60 {
		return s
	}
	return string(runes[:57]) + "..."
}

// maybeRetitle names an untitled session after its first user message.
func (s *TutorService) maybeRetitle(session *model.TutorSession, firstMessage string) {
	if session.Title != "New conversation" {
		return
	}
	session.Title = truncateTitle(firstMessage)
	_ = s.tutorRepo.UpdateSession(session)
}
