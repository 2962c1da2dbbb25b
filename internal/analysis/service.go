package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vestiplan/vestiplan-backend/pkg/config"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
)

// maxDiagnosticLen caps the collaborator reply fragment carried in errors.
const maxDiagnosticLen = 200

const analysisPrompt = `Analyze the clothing item in the picture(s) and reply with a single strict JSON object, no prose, no markdown:
{
  "title": "short listing title",
  "description": "selling description",
  "brand": "brand or empty string",
  "category": "top-level category",
  "subcategory": "specific garment type",
  "color": "main color",
  "material": "main material or empty string",
  "size": "size if readable, else empty string",
  "condition": "one of: new_with_tags, new_without_tags, very_good, good, satisfactory",
  "season": "one of: spring, summer, autumn, winter, all_seasons",
  "suggestedPeriod": "best listing period as free text",
  "estimatedPrice": 0
}`

// VisionClient is the slice of the OpenAI API the analyzer uses.
type VisionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service analyzes article photos through the vision model.
type Service interface {
	AnalyzeImages(ctx context.Context, imageURLs []string) (*AnalysisDTO, error)
}

// AnalysisDTO is the pre-filled listing suggestion returned to the client.
// Nothing is persisted.
type AnalysisDTO struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Brand           string  `json:"brand"`
	MainCategory    string  `json:"main_category"`
	Subcategory     string  `json:"subcategory"`
	ItemCategory    string  `json:"item_category"`
	Color           string  `json:"color"`
	Material        string  `json:"material"`
	Size            string  `json:"size"`
	Condition       *string `json:"condition,omitempty"`
	Season          string  `json:"season"`
	SuggestedPeriod string  `json:"suggested_period"`
	EstimatedPrice  string  `json:"estimated_price"`
	IsShoe          bool    `json:"is_shoe"`
}

type modelReply struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Brand           string      `json:"brand"`
	Category        string      `json:"category"`
	Subcategory     string      `json:"subcategory"`
	Color           string      `json:"color"`
	Material        string      `json:"material"`
	Size            string      `json:"size"`
	Condition       string      `json:"condition"`
	Season          string      `json:"season"`
	SuggestedPeriod string      `json:"suggestedPeriod"`
	EstimatedPrice  json.Number `json:"estimatedPrice"`
}

type service struct {
	client    VisionClient
	model     string
	maxTokens int
}

// NewService constructs the analyzer on top of a vision client.
func NewService(client VisionClient, cfg config.OpenAIConfig) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("vision client required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &service{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// NewVisionClient builds the real OpenAI-backed client from config.
func NewVisionClient(cfg config.OpenAIConfig) (VisionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key required")
	}
	return openai.NewClient(cfg.APIKey), nil
}

// AnalyzeImages sends the photos through the vision model and maps the
// reply onto listing fields.
func (s *service) AnalyzeImages(ctx context.Context, imageURLs []string) (*AnalysisDTO, error) {
	if len(imageURLs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image url is required").
			WithDetails(map[string]string{"image_urls": "required"})
	}

	parts := make([]openai.ChatMessagePart, 0, len(imageURLs)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: analysisPrompt,
	})
	for _, url := range imageURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    url,
				Detail: openai.ImageURLDetailHigh,
			},
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCollaborator, err, "vision model request")
	}
	if len(resp.Choices) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeCollaborator, "vision model returned no choices")
	}

	raw := stripCodeFences(resp.Choices[0].Message.Content)
	var reply modelReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCollaborator, err,
			fmt.Sprintf("decode vision reply: %s", truncate(raw, maxDiagnosticLen)))
	}

	mainCategory, subcategory, itemCategory := Reclassify(reply.Subcategory)

	dto := &AnalysisDTO{
		Title:           strings.TrimSpace(reply.Title),
		Description:     strings.TrimSpace(reply.Description),
		Brand:           strings.TrimSpace(reply.Brand),
		MainCategory:    mainCategory,
		Subcategory:     subcategory,
		ItemCategory:    itemCategory,
		Color:           strings.TrimSpace(reply.Color),
		Material:        strings.TrimSpace(reply.Material),
		Size:            strings.TrimSpace(reply.Size),
		Season:          string(MapSeason(reply.Season)),
		SuggestedPeriod: strings.TrimSpace(reply.SuggestedPeriod),
		EstimatedPrice:  reply.EstimatedPrice.String(),
		IsShoe:          IsShoeCategory(reply.Subcategory),
	}
	if condition := MapCondition(reply.Condition); condition != nil {
		value := string(*condition)
		dto.Condition = &value
	}
	if dto.EstimatedPrice == "" {
		dto.EstimatedPrice = "0"
	}
	return dto, nil
}

// stripCodeFences removes a surrounding markdown code block, with or
// without a json language tag.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max]
}
