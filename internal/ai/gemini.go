package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	genai "google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var ErrMissingAPIKey = errors.New("missing GOOGLE_API_KEY")

type Gemini struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger zerolog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model, logger: logger}, nil
}

const partitionPrompt = `You are a document layout parser. Return ONLY valid JSON - no markdown code blocks, no explanations.

Split every page of this PDF into layout elements in reading order.
Output ONLY this JSON structure:
{
  "elements": [
    {"category": "Title", "text": "1 Introduction", "page_number": 1, "box_2d": [80, 100, 120, 500]}
  ]
}

RULES:
- category: one of Title, NarrativeText, ListItem, Table, Image, FigureCaption, Header, Footer, Formula, UncategorizedText
- text: the element's full text; for Table use one row per line with cells separated by " | "; for Image a short description
- page_number: 1-based page the element is on
- box_2d: [ymin, xmin, ymax, xmax] of the element on its page, normalized to 0-1000, origin top-left
- DO NOT wrap response in code blocks
`

// Partition sends the PDF to Gemini and parses the returned layout elements.
func (g *Gemini) Partition(ctx context.Context, pdfPath string) (Partition, error) {
	var out Partition
	if g.client == nil {
		return out, errors.New("gemini not configured")
	}
	b, err := os.ReadFile(pdfPath)
	if err != nil {
		return out, err
	}
	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: partitionPrompt},
				{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: b}},
			},
		},
	}
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	res, err := g.client.Models.GenerateContent(ctx, g.model, content, cfg)
	if err != nil {
		return out, fmt.Errorf("gemini API call failed: %w", err)
	}
	js := res.Text()
	g.logger.Debug().Str("model", g.model).Int("bytes", len(js)).Msg("gemini partition response")

	return parsePartition(js)
}

func parsePartition(js string) (Partition, error) {
	var out Partition
	js = stripCodeFences(js)
	if err := json.Unmarshal([]byte(js), &out); err != nil {
		s := findFirstJSON(js)
		if s == "" {
			return out, fmt.Errorf("failed to parse Gemini response - no JSON found: %w", err)
		}
		if err2 := json.Unmarshal([]byte(s), &out); err2 != nil {
			return out, fmt.Errorf("failed to parse Gemini response as JSON: %w (original error: %v)", err2, err)
		}
	}
	return out, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// findFirstJSON returns the first balanced {...} span, ignoring braces inside
// string literals.
func findFirstJSON(s string) string {
	start, depth := -1, 0
	inString, escaped := false, false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
