// Package usecases provides the contacts assistant use case: chat completion
// grounded on a summary of the caller's saved contacts.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"captr/internal/domain/card"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatClient abstracts the completion provider.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt string, messages []ChatMessage) (string, error)
}

// ChatCommand represents the input for one assistant turn.
type ChatCommand struct {
	UserID  uint
	Message string
	History []ChatMessage
}

// ChatResult represents the assistant's reply.
type ChatResult struct {
	Reply string
}

// contactSummaryLimit bounds how many contacts go into the system prompt so
// large collections cannot blow the provider's context window.
const contactSummaryLimit = 100

// ChatUseCase handles assistant turns. Each turn rebuilds the contacts
// summary so the assistant always sees the current collection.
type ChatUseCase struct {
	cardRepo card.Repository
	client   ChatClient
	logger   logger.Interface
}

// NewChatUseCase creates a new ChatUseCase instance.
func NewChatUseCase(cardRepo card.Repository, client ChatClient, logger logger.Interface) *ChatUseCase {
	return &ChatUseCase{
		cardRepo: cardRepo,
		client:   client,
		logger:   logger,
	}
}

func (uc *ChatUseCase) Execute(ctx context.Context, cmd ChatCommand) (*ChatResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if strings.TrimSpace(cmd.Message) == "" {
		return nil, errors.NewValidationError("message is required")
	}

	cards, err := uc.cardRepo.ListByUser(ctx, cmd.UserID, contactSummaryLimit, 0)
	if err != nil {
		uc.logger.Errorw("failed to list cards for chat context", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	messages := make([]ChatMessage, 0, len(cmd.History)+1)
	messages = append(messages, cmd.History...)
	messages = append(messages, ChatMessage{Role: "user", Content: cmd.Message})

	reply, err := uc.client.Complete(ctx, buildSystemPrompt(cards), messages)
	if err != nil {
		uc.logger.Errorw("chat completion failed", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewUpstreamError("the assistant is unavailable right now")
	}

	return &ChatResult{Reply: reply}, nil
}

func buildSystemPrompt(cards []*card.Card) string {
	var b strings.Builder
	b.WriteString("You are Captr's contacts assistant. Answer questions about the user's saved business card contacts. ")
	b.WriteString("Be concise and only use the contact data below; say so when the answer is not in it.\n\n")

	if len(cards) == 0 {
		b.WriteString("The user has no saved contacts yet.")
		return b.String()
	}

	b.WriteString("Saved contacts:\n")
	for i, c := range cards {
		f := c.Fields()
		b.WriteString(fmt.Sprintf("%d. %s", i+1, valueOr(f.Name, "(no name)")))
		if f.JobTitle != "" || f.Company != "" {
			b.WriteString(" — " + strings.TrimSpace(strings.Join(nonEmpty(f.JobTitle, f.Company), ", ")))
		}
		for _, part := range nonEmpty(f.Email, f.Phone, f.Website, f.Address) {
			b.WriteString("; " + part)
		}
		if f.Notes != "" {
			b.WriteString("; notes: " + f.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
