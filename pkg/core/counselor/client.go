package counselor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/collegegate/collegegate/pkg/core"
)

const (
	// DefaultSearchModel answers grounded research questions.
	DefaultSearchModel = "gemini-2.5-flash"
	// DefaultImageModel renders and edits campus imagery.
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultVideoModel produces short campus fly-through clips.
	DefaultVideoModel = "veo-3.1-fast-generate-preview"

	defaultVideoPollInterval = 5 * time.Second
	defaultVideoPollBudget   = 6 * time.Minute
)

// Config controls which models the client talks to and how long it is
// willing to wait for long-running video operations.
type Config struct {
	APIKey      string
	SearchModel string
	ImageModel  string
	VideoModel  string

	VideoPollInterval time.Duration
	VideoPollBudget   time.Duration

	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.SearchModel == "" {
		c.SearchModel = DefaultSearchModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.VideoModel == "" {
		c.VideoModel = DefaultVideoModel
	}
	if c.VideoPollInterval <= 0 {
		c.VideoPollInterval = defaultVideoPollInterval
	}
	if c.VideoPollBudget <= 0 {
		c.VideoPollBudget = defaultVideoPollBudget
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client wraps the Gemini API for the non-realtime counselor features:
// grounded research, campus image generation and editing, and campus
// video generation.
type Client struct {
	config Config
	logger *slog.Logger

	generateContent func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	generateVideos  func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	pollVideos      func(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// NewClient builds a client backed by the real Gemini API.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, core.NewAuthenticationError("API key is required")
	}
	config.applyDefaults()

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, core.NewTransportError("failed to create Gemini client", err)
	}

	return &Client{
		config: config,
		logger: config.Logger.With("component", "counselor_client"),
		generateContent: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return gc.Models.GenerateContent(ctx, model, contents, cfg)
		},
		generateVideos: func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return gc.Models.GenerateVideos(ctx, model, prompt, image, cfg)
		},
		pollVideos: func(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
			return gc.Operations.GetVideosOperation(ctx, op, nil)
		},
	}, nil
}

func userText(text string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	}}
}
