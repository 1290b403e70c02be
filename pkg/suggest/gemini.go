package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	genai "google.golang.org/genai"

	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const promptTemplate = `You are an expert at identifying fields that might contain image information by their names.
I have a JSON object and I've extracted all unique key names from it. Here is a JSON string array of these key names:
%s

From this list, identify and return only those key names (from the provided list) that are most likely to contain:
- Image paths (e.g., "product.jpg", "/images/icon.png")
- Absolute image URLs (e.g., "https://example.com/image.gif")
- Embedded image data, often referred to as Data URIs (e.g., a field that might hold "data:image/png;base64,...")

Consider common naming conventions such as "image", "url", "path", "uri", "foto", "img", "icon", "avatar", "thumbnail", "picture", "base64Image", "imageData".
Respond with a JSON object of the form {"imageFields": ["..."]}.
If no keys seem to be image-related, return {"imageFields": []}.`

// Generator sends a prompt to a model and returns its JSON text reply.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// genaiGenerator is a Generator backed by the official genai client.
type genaiGenerator struct {
	cli   *genai.Client
	model string
}

func (g *genaiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Gemini asks a Gemini model to classify key names.
type Gemini struct {
	gen   Generator
	model string
}

// NewGemini creates a Gemini suggester for the given API key and model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{gen: &genaiGenerator{cli: cli, model: model}, model: model}, nil
}

// NewGeminiWithGenerator creates a Gemini suggester over an arbitrary
// Generator. Tests use it with a fake.
func NewGeminiWithGenerator(gen Generator, model string) *Gemini {
	return &Gemini{gen: gen, model: model}
}

// Name identifies the suggester in logs.
func (g *Gemini) Name() string { return "Gemini:" + g.model }

// Suggest implements Suggester. An empty key list never reaches the model.
func (g *Gemini) Suggest(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	encoded, err := json.Marshal(sorted)
	if err != nil {
		return nil, err
	}
	prompt := BuildPrompt(string(encoded))
	log.Debug("Requesting field suggestions", "model", g.model, "keys", len(sorted), "bytes", len(prompt))

	raw, err := g.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	fields, err := ParseFields(raw)
	if err != nil {
		return nil, err
	}
	return restrictTo(fields, sorted), nil
}

// BuildPrompt renders the classification prompt around a JSON array of keys.
func BuildPrompt(keysJSON string) string {
	return fmt.Sprintf(promptTemplate, keysJSON)
}

// ParseFields reads a model reply of the form {"imageFields": [...]} or a
// bare JSON array of strings. Markdown code fences around the JSON are
// tolerated.
func ParseFields(raw string) ([]string, error) {
	text := stripFence(strings.TrimSpace(raw))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var wrapped struct {
		ImageFields []string `json:"imageFields"`
	}
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if wrapped.ImageFields == nil {
			return []string{}, nil
		}
		return wrapped.ImageFields, nil
	}

	var bare []string
	if err := json.Unmarshal([]byte(text), &bare); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if bare == nil {
		bare = []string{}
	}
	return bare, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
