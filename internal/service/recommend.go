package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	"github.com/homeoremedies/remedy-finder/api/internal/entity"
)

// Error conditions surfaced by the recommendation engine. Rate limiting
// and billing failures are distinct so the caller can map them to 429
// and 402 instead of a generic upstream failure.
var (
	ErrRateLimited     = errors.New("model provider rate limit exceeded")
	ErrPaymentRequired = errors.New("model provider requires payment")
	ErrUpstreamModel   = errors.New("model call failed")
)

const toolName = "recommend_homeopathic_medicines"

// recommendationSchema is the structured-output contract the model must
// conform its reply to. Additional undeclared fields are rejected.
var recommendationSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "recommendations": {
      "type": "array",
      "description": "List of 3-5 homeopathic medicine recommendations, ordered by best match",
      "items": {
        "type": "object",
        "properties": {
          "medicineName": {
            "type": "string",
            "description": "The full name of the recommended homeopathic medicine (Latin name + potency)"
          },
          "potency": {
            "type": "string",
            "description": "The recommended potency (e.g., 6C, 30C, 200C)"
          },
          "dosage": {
            "type": "string",
            "description": "Detailed dosage instructions including frequency and duration"
          },
          "description": {
            "type": "string",
            "description": "Comprehensive description of the remedy and why it matches the symptoms"
          },
          "benefits": {
            "type": "array",
            "items": {"type": "string"},
            "description": "List of expected benefits (3-5 items)"
          },
          "considerations": {
            "type": "array",
            "items": {"type": "string"},
            "description": "Important safety considerations and guidance (3-5 items)"
          }
        },
        "required": ["medicineName", "potency", "dosage", "description", "benefits", "considerations"],
        "additionalProperties": false
      },
      "minItems": 3,
      "maxItems": 5
    }
  },
  "required": ["recommendations"],
  "additionalProperties": false
}`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// ChatCompleter is the slice of the OpenAI-compatible client the engine
// needs; *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RemedyService turns a symptom questionnaire into validated remedy
// recommendations via a single structured model call. It never retries;
// retryable conditions are reported as such to the caller instead.
type RemedyService struct {
	chat  ChatCompleter
	model string
}

// NewRemedyService constructs the engine around an OpenAI-compatible client.
func NewRemedyService(chat ChatCompleter, model string) *RemedyService {
	return &RemedyService{chat: chat, model: model}
}

// Recommend performs one model call and returns 3-5 validated
// recommendations with purchase links attached.
func (s *RemedyService) Recommend(ctx context.Context, req dto.RecommendRequest) ([]entity.RemedyRecommendation, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(req)},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        toolName,
					Description: "Recommend multiple homeopathic medicines based on symptom analysis",
					Parameters:  recommendationSchema,
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: toolName},
		},
	}

	resp, err := s.chat.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapModelError(err)
	}

	recommendations, err := extractRecommendations(resp)
	if err != nil {
		return nil, err
	}

	for i := range recommendations {
		recommendations[i].PurchaseURL = purchaseURL(recommendations[i].MedicineName)
	}
	return recommendations, nil
}

func mapModelError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusPaymentRequired:
			return ErrPaymentRequired
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstreamModel, err)
}

// extractRecommendations asserts the reply invokes the expected tool
// and that the decoded arguments honor the schema's invariants.
func extractRecommendations(resp openai.ChatCompletionResponse) ([]entity.RemedyRecommendation, error) {
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("%w: reply contains no tool call", ErrUpstreamModel)
	}

	call := resp.Choices[0].Message.ToolCalls[0]
	if call.Function.Name != toolName {
		return nil, fmt.Errorf("%w: unexpected tool %q", ErrUpstreamModel, call.Function.Name)
	}

	var payload struct {
		Recommendations []entity.RemedyRecommendation `json:"recommendations"`
	}
	decoder := json.NewDecoder(bytes.NewReader([]byte(call.Function.Arguments)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: unparsable tool arguments: %v", ErrUpstreamModel, err)
	}

	if n := len(payload.Recommendations); n < 3 || n > 5 {
		return nil, fmt.Errorf("%w: expected 3-5 recommendations, got %d", ErrUpstreamModel, n)
	}
	for i, rec := range payload.Recommendations {
		if err := validateRecommendation(rec); err != nil {
			return nil, fmt.Errorf("%w: recommendation %d: %v", ErrUpstreamModel, i, err)
		}
	}

	return payload.Recommendations, nil
}

func validateRecommendation(rec entity.RemedyRecommendation) error {
	switch {
	case strings.TrimSpace(rec.MedicineName) == "":
		return errors.New("missing medicine name")
	case strings.TrimSpace(rec.Potency) == "":
		return errors.New("missing potency")
	case strings.TrimSpace(rec.Dosage) == "":
		return errors.New("missing dosage")
	case strings.TrimSpace(rec.Description) == "":
		return errors.New("missing description")
	case len(rec.Benefits) == 0:
		return errors.New("empty benefits")
	case len(rec.Considerations) == 0:
		return errors.New("empty considerations")
	}
	return nil
}

// purchaseURL derives a marketplace search link from the medicine name:
// internal whitespace collapses to "+", the result is URL-encoded, and
// a fixed "homeopathic" qualifier is appended.
func purchaseURL(medicineName string) string {
	joined := whitespacePattern.ReplaceAllString(strings.TrimSpace(medicineName), "+")
	return fmt.Sprintf("https://www.amazon.com/s?k=%s+homeopathic", url.QueryEscape(joined))
}
