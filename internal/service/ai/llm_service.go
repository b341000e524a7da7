package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/dilzzzz/bagdag/internal/config"
	"github.com/dilzzzz/bagdag/internal/service/session"
)

// SwingAnalysisPrompt is the fixed instruction every uploaded swing image
// is analyzed with. It is independent of the coaching conversation.
const SwingAnalysisPrompt = `Analyze this golf swing from the provided image. Identify key strengths and areas for improvement. Provide 2-3 specific, actionable tips to help the golfer. Focus on aspects like posture, grip, alignment, swing plane, and body rotation.`

// Service encapsulates the generative-AI chat functionality: persona
// conversations and stateless swing-image analysis.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service and compiles the conversation chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// StreamReply streams the assistant's reply for one turn of the persona
// conversation. The conversation's accumulated history is replayed so the
// model retains prior context.
func (s *Service) StreamReply(ctx context.Context, conv *session.Conversation, text string) (*schema.StreamReader[*schema.Message], error) {
	input := map[string]any{
		"system":  conv.Persona.SystemInstruction,
		"history": historyWindow(conv.History()),
		"query":   text,
	}

	stream, err := s.chain.Stream(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}

	return stream, nil
}

// AnalyzeSwing issues a single non-streaming multimodal request combining
// the analysis instruction, the encoded image, and the user's caption.
func (s *Service) AnalyzeSwing(ctx context.Context, caption, imageB64, mimeType string) (string, error) {
	parts := []schema.ChatMessagePart{
		{
			Type: schema.ChatMessagePartTypeImageURL,
			ImageURL: &schema.ChatMessageImageURL{
				URL:      fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64),
				MIMEType: mimeType,
			},
		},
		{
			Type: schema.ChatMessagePartTypeText,
			Text: SwingAnalysisPrompt,
		},
	}
	if caption != "" {
		parts = append(parts, schema.ChatMessagePart{
			Type: schema.ChatMessagePartTypeText,
			Text: fmt.Sprintf("The golfer adds: %s", caption),
		})
	}

	response, err := s.chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.User, MultiContent: parts},
	})
	if err != nil {
		return "", fmt.Errorf("failed to analyze swing image: %w", err)
	}

	return response.Content, nil
}

// historyWindow caps the replayed history so long sessions keep prompts
// bounded.
func historyWindow(history []*schema.Message) []*schema.Message {
	const historyLimit = 10

	if len(history) == 0 {
		return nil
	}
	if len(history) > historyLimit {
		return history[len(history)-historyLimit:]
	}
	return history
}
