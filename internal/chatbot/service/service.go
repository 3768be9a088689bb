package service

import (
	"context"
	"strings"

	"mediguide/platform/apperr"
	"mediguide/platform/logger"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// BlankQuestionAnswer is returned without calling the model.
const BlankQuestionAnswer = "Please write a question."

const (
	msgNotConfigured = "chatbot is not configured"
	msgUnavailable   = "chatbot is unavailable, please try again later"
)

type Service struct {
	llm model.LLM
	log *logger.Logger
}

// New creates the service. A nil llm makes every non-blank question unavailable.
func New(llm model.LLM, log *logger.Logger) *Service {
	return &Service{llm: llm, log: log}
}

// Ask sends question as a single user message and returns the text reply.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return BlankQuestionAnswer, nil
	}
	if s.llm == nil {
		return "", apperr.Unavailable(msgNotConfigured)
	}

	req := &model.LLMRequest{
		Model:    s.llm.Name(),
		Contents: []*genai.Content{genai.NewContentFromText(question, genai.RoleUser)},
	}

	var answer strings.Builder
	for resp, err := range s.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			s.log.WithContext(ctx).Error("chatbot completion failed", "model", s.llm.Name(), "error", err)
			return "", apperr.Wrap(apperr.KindUnavailable, msgUnavailable, err).WithOp("chatbot.Ask")
		}
		if resp == nil || resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part != nil {
				answer.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(answer.String())
	if text == "" {
		s.log.WithContext(ctx).Warn("chatbot returned an empty answer", "model", s.llm.Name())
		return "", apperr.Unavailable(msgUnavailable)
	}
	return text, nil
}
