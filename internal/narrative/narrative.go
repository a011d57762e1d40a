// Package narrative generates a short written summary of an aggregation
// result using the OpenAI API. It is an optional report feature; callers
// skip it when no API key is configured.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/lox/crimereport/internal/analysis"
)

// Generator produces report summaries via the OpenAI chat API.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator creates a narrative generator. It reads the OPENAI_API_KEY
// environment variable for authentication.
func NewGenerator() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{
		client: client,
		model:  "gpt-4o-mini",
	}, nil
}

// Summarize asks the model for a short prose summary of the headline
// statistics. The returned text goes into the report manifest verbatim.
func (g *Generator) Summarize(ctx context.Context, res *analysis.Result) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(res)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(res *analysis.Result) string {
	var b strings.Builder
	b.WriteString("Write a neutral two-paragraph summary of an incident dataset for a report. Facts:\n")
	fmt.Fprintf(&b, "- %d incidents, %d with a valid timestamp.\n", res.TotalRows, res.WithTimestamp)
	if len(res.Monthly) > 0 {
		fmt.Fprintf(&b, "- Data spans %s to %s.\n",
			res.Monthly[0].Period.Format("January 2006"),
			res.Monthly[len(res.Monthly)-1].Period.Format("January 2006"))
	}
	for i, c := range res.TopPrimary {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d incidents.\n", c.Category, c.Count)
	}
	for _, r := range res.ArrestRate {
		fmt.Fprintf(&b, "- Arrest rate for %s: %.1f%%.\n", r.Category, r.Rate*100)
	}
	if res.HasGeo {
		fmt.Fprintf(&b, "- %d incidents are geocoded.\n", res.Geocoded)
	}
	b.WriteString("Do not speculate beyond these facts.")
	return b.String()
}
