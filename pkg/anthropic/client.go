// Package anthropic wraps the official anthropic-sdk-go behind a small
// interface so callers can be tested against a mock.
package anthropic

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// Client defines the Anthropic API operations used by the augmentation
// provider.
type Client interface {
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

// MessageRequest is our own request type for CreateMessage.
type MessageRequest struct {
	Model     string
	MaxTokens int64
	Messages  []Message
}

// Message represents a single conversational message. Content may mix text
// and document blocks.
type Message struct {
	Role    string // "user" or "assistant"
	Content []ContentBlock
}

// Content block types.
const (
	BlockTypeText     = "text"
	BlockTypeDocument = "document"
)

// ContentBlock is one block of request content: plain text, or a base64
// PDF document.
type ContentBlock struct {
	Type string
	Text string
	Data string // base64 document payload
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockTypeText, Text: text}
}

// DocumentBlock builds a base64 PDF document block.
func DocumentBlock(base64Data string) ContentBlock {
	return ContentBlock{Type: BlockTypeDocument, Data: base64Data}
}

// MessageResponse is our own response type from CreateMessage.
type MessageResponse struct {
	ID         string
	Model      string
	Content    []ResponseBlock
	StopReason string
	Usage      TokenUsage
}

// ResponseBlock represents a block of content in a response.
type ResponseBlock struct {
	Type string
	Text string
}

// Text joins the text blocks of a response with newlines.
func (r *MessageResponse) Text() string {
	out := ""
	for _, b := range r.Content {
		if b.Type != "text" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += b.Text
	}
	return out
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client sdk.Client
}

// NewClient creates a new Anthropic client backed by the SDK.
func NewClient(apiKey string) Client {
	return &sdkClient{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
	}
}

func (c *sdkClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: req.MaxTokens,
		Messages:  toSDKMessages(req.Messages),
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: create message")
	}

	return fromSDKMessage(msg), nil
}

func toSDKMessages(msgs []Message) []sdk.MessageParam {
	out := make([]sdk.MessageParam, len(msgs))
	for i, m := range msgs {
		blocks := make([]sdk.ContentBlockParamUnion, len(m.Content))
		for j, b := range m.Content {
			switch b.Type {
			case BlockTypeDocument:
				blocks[j] = sdk.NewDocumentBlock(sdk.Base64PDFSourceParam{
					Data: b.Data,
				})
			default:
				blocks[j] = sdk.NewTextBlock(b.Text)
			}
		}
		switch m.Role {
		case "assistant":
			out[i] = sdk.NewAssistantMessage(blocks...)
		default:
			out[i] = sdk.NewUserMessage(blocks...)
		}
	}
	return out
}

func fromSDKMessage(msg *sdk.Message) *MessageResponse {
	blocks := make([]ResponseBlock, 0, len(msg.Content))
	for _, b := range msg.Content {
		blocks = append(blocks, ResponseBlock{
			Type: b.Type,
			Text: b.Text,
		})
	}

	return &MessageResponse{
		ID:         msg.ID,
		Model:      string(msg.Model),
		Content:    blocks,
		StopReason: string(msg.StopReason),
		Usage: TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
}
