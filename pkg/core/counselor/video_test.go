package counselor

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/collegegate/collegegate/pkg/core"
)

func doneVideoOp(uri string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: uri}}},
		},
	}
}

func TestGenerateCampusVideo_PollsUntilDone(t *testing.T) {
	c := newStubClient()
	c.config.VideoPollInterval = time.Millisecond
	c.config.VideoPollBudget = time.Second

	var gotModel, gotPrompt string
	var gotCfg *genai.GenerateVideosConfig
	c.generateVideos = func(_ context.Context, model, prompt string, _ *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
		gotModel, gotPrompt, gotCfg = model, prompt, cfg
		return &genai.GenerateVideosOperation{}, nil
	}
	polls := 0
	c.pollVideos = func(_ context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		polls++
		if polls < 3 {
			return op, nil
		}
		return doneVideoOp("https://storage.example/clip.mp4"), nil
	}

	vid, err := c.GenerateCampusVideo(context.Background(), VideoRequest{Prompt: "fly over the main quad"})
	if err != nil {
		t.Fatalf("GenerateCampusVideo() error: %v", err)
	}
	if vid.URI != "https://storage.example/clip.mp4" {
		t.Errorf("uri = %q", vid.URI)
	}
	if polls != 3 {
		t.Errorf("polls = %d, want 3", polls)
	}
	if gotModel != DefaultVideoModel || gotPrompt != "fly over the main quad" {
		t.Errorf("model = %q, prompt = %q", gotModel, gotPrompt)
	}
	if gotCfg.NumberOfVideos != 1 || gotCfg.AspectRatio != "16:9" || gotCfg.Resolution != "720p" {
		t.Errorf("unexpected config: %+v", gotCfg)
	}
}

func TestGenerateCampusVideo_Timeout(t *testing.T) {
	c := newStubClient()
	c.config.VideoPollInterval = time.Millisecond
	c.config.VideoPollBudget = 20 * time.Millisecond
	c.generateVideos = func(context.Context, string, string, *genai.Image, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
		return &genai.GenerateVideosOperation{}, nil
	}
	c.pollVideos = func(_ context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		return op, nil
	}

	_, err := c.GenerateCampusVideo(context.Background(), VideoRequest{Prompt: "endless render"})
	var coreErr *core.Error
	if !errors.As(err, &coreErr) || coreErr.Type != core.ErrAPI {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestGenerateCampusVideo_CallerCancel(t *testing.T) {
	c := newStubClient()
	c.config.VideoPollInterval = time.Millisecond
	c.config.VideoPollBudget = time.Minute
	c.generateVideos = func(context.Context, string, string, *genai.Image, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
		return &genai.GenerateVideosOperation{}, nil
	}
	c.pollVideos = func(_ context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		return op, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := c.GenerateCampusVideo(ctx, VideoRequest{Prompt: "cancelled render"})
	var coreErr *core.Error
	if !errors.As(err, &coreErr) || coreErr.Type != core.ErrTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected wrapped context.Canceled")
	}
}

func TestGenerateCampusVideo_EmptyPrompt(t *testing.T) {
	c := newStubClient()
	if _, err := c.GenerateCampusVideo(context.Background(), VideoRequest{}); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestGenerateCampusVideo_EmptyResult(t *testing.T) {
	c := newStubClient()
	c.config.VideoPollInterval = time.Millisecond
	c.generateVideos = func(context.Context, string, string, *genai.Image, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
		return &genai.GenerateVideosOperation{Done: true}, nil
	}
	if _, err := c.GenerateCampusVideo(context.Background(), VideoRequest{Prompt: "ghost clip"}); err == nil {
		t.Error("expected error for operation without video")
	}
}

func TestSystemInstruction(t *testing.T) {
	counselorPrompt := SystemInstruction("counselor")
	traineePrompt := SystemInstruction("trainee")
	if counselorPrompt == traineePrompt {
		t.Error("modes should produce different personas")
	}
	if counselorPrompt != counselorInstruction || traineePrompt != traineeInstruction {
		t.Error("unexpected persona mapping")
	}
}
