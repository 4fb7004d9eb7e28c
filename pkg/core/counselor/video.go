package counselor

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/collegegate/collegegate/pkg/core"
)

// VideoRequest describes a campus fly-through clip to generate.
type VideoRequest struct {
	Prompt      string
	AspectRatio string // defaults to "16:9"
	Resolution  string // defaults to "720p"
}

// GeneratedVideo points at a finished clip. The URI requires the API
// key appended as a query parameter to download.
type GeneratedVideo struct {
	URI string `json:"uri"`
}

// GenerateCampusVideo starts a video generation operation and polls it
// to completion. The poll budget bounds the total wait; the caller's
// context can cancel earlier.
func (c *Client) GenerateCampusVideo(ctx context.Context, req VideoRequest) (*GeneratedVideo, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, core.NewInvalidRequestErrorWithParam("prompt is required", "prompt")
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}
	if req.Resolution == "" {
		req.Resolution = "720p"
	}

	op, err := c.generateVideos(ctx, c.config.VideoModel, prompt, nil, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		AspectRatio:    req.AspectRatio,
		Resolution:     req.Resolution,
	})
	if err != nil {
		return nil, core.NewAPIError("video request failed: " + err.Error())
	}

	pollCtx, cancel := context.WithTimeout(ctx, c.config.VideoPollBudget)
	defer cancel()

	ticker := time.NewTicker(c.config.VideoPollInterval)
	defer ticker.Stop()

	for !op.Done {
		select {
		case <-pollCtx.Done():
			if ctx.Err() != nil {
				return nil, core.NewTransportError("video generation cancelled", ctx.Err())
			}
			return nil, core.NewAPIError("video generation timed out")
		case <-ticker.C:
		}
		op, err = c.pollVideos(pollCtx, op)
		if err != nil {
			return nil, core.NewAPIError("video poll failed: " + err.Error())
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 ||
		op.Response.GeneratedVideos[0].Video == nil || op.Response.GeneratedVideos[0].Video.URI == "" {
		return nil, core.NewAPIError("video operation finished without a video")
	}

	c.logger.Info("campus video ready", "model", c.config.VideoModel)
	return &GeneratedVideo{URI: op.Response.GeneratedVideos[0].Video.URI}, nil
}
