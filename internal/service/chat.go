package service

import (
	"context"
	"errors"
	"strings"

	"github.com/julianstephens/sisy/internal/actions"
	"github.com/julianstephens/sisy/internal/agent"
	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
)

// ChatResult is the outcome of a committed chat turn.
type ChatResult struct {
	AssistantText string
	Actions       actions.Result
}

// IsTyping reports whether a chat round-trip is in flight.
func (s *Service) IsTyping() bool {
	return s.typing.Load()
}

// SendChat sends text to the agent and, on success, records both messages, adopts
// the conversation id and applies the returned actions in one commit. A failed
// round-trip changes nothing. Only one send may be in flight; others get ErrBusy.
func (s *Service) SendChat(ctx context.Context, text, tab string, imageURI *string) (ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" && imageURI == nil {
		return ChatResult{}, apperrors.Validation("message must not be empty")
	}
	if s.agent == nil {
		return ChatResult{}, apperrors.Transport(errors.New("no agent configured"))
	}
	if tab == "" {
		tab = constants.DefaultChatTab
	}

	if !s.typing.CompareAndSwap(false, true) {
		return ChatResult{}, apperrors.ErrBusy
	}
	defer s.typing.Store(false)

	snap := s.Snapshot()
	req := agent.Request{
		ConversationID: snap.ConversationID,
		Tab:            tab,
		Text:           text,
		ImageURI:       imageURI,
		UserContext:    userContext(snap),
	}
	sentAt := s.now()

	resp, err := s.agent.Send(ctx, req)
	if err != nil {
		logger.Warn("Chat round-trip failed", "error", err)
		if !errors.Is(err, apperrors.ErrTransport) {
			err = apperrors.Transport(err)
		}
		return ChatResult{}, err
	}

	var result ChatResult
	_, err = s.mutate(func(st *models.State) (bool, error) {
		st.Chat = append(st.Chat,
			models.ChatMessage{ID: s.newID(), Role: constants.ChatRoleUser, Text: text, Tab: tab, Timestamp: sentAt},
			models.ChatMessage{ID: s.newID(), Role: constants.ChatRoleAssistant, Text: resp.AssistantText, Tab: tab, Timestamp: s.now()},
		)
		if resp.ConversationID != "" {
			conv := resp.ConversationID
			st.ConversationID = &conv
		}

		next, res := s.applier.Apply(*st, resp.Actions, s.now())
		*st = next
		result = ChatResult{AssistantText: resp.AssistantText, Actions: res}
		return true, nil
	})
	if err != nil {
		return ChatResult{}, err
	}
	return result, nil
}

// ApplyActions folds an agent action batch into state outside of a chat turn.
func (s *Service) ApplyActions(batch []actions.Action) (actions.Result, error) {
	var res actions.Result
	_, err := s.mutate(func(st *models.State) (bool, error) {
		var next models.State
		next, res = s.applier.Apply(*st, batch, s.now())
		*st = next
		return res.Applied > 0, nil
	})
	return res, err
}

func userContext(st models.State) *agent.UserContext {
	profile := make(map[string]string, len(st.Profile))
	for _, f := range st.Profile {
		if f.Value != "" {
			profile[f.Key] = f.Value
		}
	}
	return &agent.UserContext{Profile: profile, Routine: st.Routine}
}
