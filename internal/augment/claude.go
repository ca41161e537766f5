package augment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intake-cli/pkg/anthropic"
)

// Per-strategy confidence assigned to provider-returned fields.
const (
	documentConfidence   = 0.90
	fullTextConfidence   = 0.88
	supplementConfidence = 0.80
)

const (
	fullTextLimit   = 10000
	supplementLimit = 8000
)

var jsonBlockRegex = regexp.MustCompile(`(?s)\{.*\}`)

// fieldDescriptions feed the targeted supplement prompt.
var fieldDescriptions = map[string]string{
	"companyName": "the subcontractor company name (with LLC, Inc, etc.)",
	"contactName": "the full name of the contact person",
	"email":       "the email address",
	"phone":       "the phone number in format (XXX) XXX-XXXX",
	"trade":       "the construction trade/specialty (Electrical, Plumbing, HVAC, etc.)",
}

const documentPrompt = `Extract the following information in JSON format:

{
  "companyName": "Company name (with LLC, Inc, etc. if present)",
  "contactName": "Full name of the contact person",
  "email": "Email address",
  "phone": "Phone number in format (XXX) XXX-XXXX",
  "trade": "Trade/scope (e.g., Electrical, Plumbing, HVAC, Concrete, Sitework, Low Voltage, etc.)"
}

Rules:
- Only include fields if you find them with high confidence
- For trade, identify the primary construction trade/specialty
- For phone, format as (XXX) XXX-XXXX
- If a field is not found or unclear, set it to null
- Be specific and accurate
- Return ONLY the JSON object, no extra text`

const fullTextPrompt = `Extract contact information from this construction proposal/bid document. Return JSON with these fields:

{
  "companyName": "string or null",
  "contactName": "string or null",
  "email": "string or null",
  "phone": "string or null",
  "trade": "string or null"
}

IMPORTANT INSTRUCTIONS:
- companyName: Look for company name in letterhead, footer, "FROM:", or filename. Include suffixes like LLC, Inc, Corp if present. Do NOT include personal names.
- contactName: Look for "Contact:", "Attn:", "From:", "Prepared by:", or signature blocks. Full first and last name only.
- email: Any email address found (exclude generic like info@, support@)
- phone: Format as (XXX) XXX-XXXX. Look for "Phone:", "Tel:", "Office:", or standalone numbers
- trade: The primary construction trade - choose from: Electrical, Plumbing, HVAC, Concrete, Sitework, Excavation, Low Voltage, Roofing, Demolition, Paving, Landscaping, Fire Protection, Steel, Carpentry, Drywall, Masonry

CRITICAL: Make your best guess for each field even if confidence is medium. Only use null if truly no relevant information exists. Be thorough - check the entire document.

Return ONLY valid JSON, no markdown, no explanations.

Document:
%s`

// ClaudeProvider implements Provider against the Anthropic messages API.
type ClaudeProvider struct {
	client anthropic.Client
	model  string
}

// NewClaudeProvider creates a Claude-backed augmentation provider.
func NewClaudeProvider(client anthropic.Client, model string) *ClaudeProvider {
	return &ClaudeProvider{client: client, model: model}
}

// ExtractFromDocument asks Claude to derive all five fields from the raw PDF
// bytes, attached as a base64 document block.
func (p *ClaudeProvider) ExtractFromDocument(ctx context.Context, data []byte, filename string) (*Result, error) {
	zap.L().Info("augment: document extraction", zap.String("file", filename))

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages: []anthropic.Message{{
			Role: "user",
			Content: []anthropic.ContentBlock{
				anthropic.DocumentBlock(base64.StdEncoding.EncodeToString(data)),
				anthropic.TextBlock(documentPrompt),
			},
		}},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "augment: document extraction for %s", filename)
	}

	info, err := parseContactInfo(resp.Text())
	if err != nil {
		return nil, eris.Wrapf(err, "augment: document extraction for %s", filename)
	}

	return &Result{Info: info, Confidence: documentConfidence}, nil
}

// ExtractFromText asks Claude to derive all five fields from extracted text.
func (p *ClaudeProvider) ExtractFromText(ctx context.Context, text, filename string) (*Result, error) {
	zap.L().Info("augment: full-text extraction", zap.String("file", filename))

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages: []anthropic.Message{{
			Role: "user",
			Content: []anthropic.ContentBlock{
				anthropic.TextBlock(fmt.Sprintf(fullTextPrompt, truncate(text, fullTextLimit))),
			},
		}},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "augment: full-text extraction for %s", filename)
	}

	info, err := parseContactInfo(resp.Text())
	if err != nil {
		return nil, eris.Wrapf(err, "augment: full-text extraction for %s", filename)
	}

	return &Result{Info: info, Confidence: fullTextConfidence}, nil
}

// SupplementFields asks Claude only for the named fields. Malformed
// responses degrade to an empty result with warnings instead of an error,
// so the rule-based record survives untouched.
func (p *ClaudeProvider) SupplementFields(ctx context.Context, text, filename string, fields []string) (*Result, error) {
	zap.L().Info("augment: supplementing fields",
		zap.String("file", filename),
		zap.Strings("fields", fields),
	)

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 512,
		Messages: []anthropic.Message{{
			Role: "user",
			Content: []anthropic.ContentBlock{
				anthropic.TextBlock(supplementPrompt(truncate(text, supplementLimit), fields)),
			},
		}},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "augment: supplement for %s", filename)
	}

	info, err := parseContactInfo(resp.Text())
	if err != nil {
		return &Result{Warnings: []string{err.Error()}}, nil
	}

	return &Result{Info: info, Confidence: supplementConfidence}, nil
}

func supplementPrompt(text string, fields []string) string {
	var lines []string
	for _, f := range fields {
		desc, ok := fieldDescriptions[f]
		if !ok {
			desc = f
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", f, desc))
	}

	var schema []string
	for _, f := range fields {
		schema = append(schema, fmt.Sprintf("%q: \"value or null\"", f))
	}

	return fmt.Sprintf(`Find the following information in this construction proposal/bid document. Make your best guess even if confidence is medium - only use null if truly nothing relevant exists.

Extract these fields:
%s

Return ONLY valid JSON, no markdown:
{
  %s
}

Document:
%s`, strings.Join(lines, "\n"), strings.Join(schema, ",\n  "), text)
}

// parseContactInfo pulls the first JSON object out of a model response and
// normalizes its string fields.
func parseContactInfo(responseText string) (ContactInfo, error) {
	block := jsonBlockRegex.FindString(responseText)
	if block == "" {
		return ContactInfo{}, eris.New("no JSON found in response")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return ContactInfo{}, eris.Wrap(err, "invalid JSON in response")
	}

	return ContactInfo{
		CompanyName: stringField(raw, "companyName"),
		ContactName: stringField(raw, "contactName"),
		Email:       stringField(raw, "email"),
		Phone:       stringField(raw, "phone"),
		Trade:       stringField(raw, "trade"),
	}, nil
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
