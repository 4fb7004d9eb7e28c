package counselor

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/collegegate/collegegate/pkg/core"
	"github.com/collegegate/collegegate/pkg/core/live"
)

// GenerateImage renders a campus image from a text prompt. It satisfies
// live.ImageGenerator so live sessions can answer generateCollegeImage
// tool calls with it.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*live.GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, core.NewInvalidRequestErrorWithParam("prompt is required", "prompt")
	}
	return c.imageFromParts(ctx, []*genai.Part{{Text: prompt}})
}

// EditCampusImage applies a text instruction to an existing image, for
// example "show this quad at golden hour".
func (c *Client) EditCampusImage(ctx context.Context, image []byte, mimeType, instruction string) (*live.GeneratedImage, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, core.NewInvalidRequestErrorWithParam("instruction is required", "instruction")
	}
	if len(image) == 0 {
		return nil, core.NewInvalidRequestErrorWithParam("image data is required", "image")
	}
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		{Text: instruction},
	}
	return c.imageFromParts(ctx, parts)
}

func (c *Client) imageFromParts(ctx context.Context, parts []*genai.Part) (*live.GeneratedImage, error) {
	contents := []*genai.Content{{Role: "user", Parts: parts}}
	resp, err := c.generateContent(ctx, c.config.ImageModel, contents, nil)
	if err != nil {
		return nil, core.NewAPIError("image request failed: " + err.Error())
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &live.GeneratedImage{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				}, nil
			}
		}
	}
	return nil, core.NewAPIError("model returned no image data")
}
