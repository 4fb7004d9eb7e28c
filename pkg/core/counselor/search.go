package counselor

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/collegegate/collegegate/pkg/core"
)

// Source is a web citation backing a research answer.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SearchResult is a grounded answer to a college research question.
type SearchResult struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// SearchCollegeInfo answers a research question using Google Search
// grounding and returns the answer with deduplicated citations.
func (c *Client) SearchCollegeInfo(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.NewInvalidRequestErrorWithParam("query is required", "query")
	}

	resp, err := c.generateContent(ctx, c.config.SearchModel, userText(query), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, core.NewAPIError("search request failed: " + err.Error())
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, core.NewAPIError("search returned no candidates")
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	result := &SearchResult{Text: text.String()}
	seen := make(map[string]bool)
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
				continue
			}
			seen[chunk.Web.URI] = true
			result.Sources = append(result.Sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}

	c.logger.Debug("search completed", "query_len", len(query), "sources", len(result.Sources))
	return result, nil
}
