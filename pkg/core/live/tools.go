package live

import (
	"context"
	"strings"
	"time"

	"github.com/collegegate/collegegate/pkg/core"
)

const (
	// imageStylePrefix is prepended to every model-supplied prompt so tool
	// images share a consistent look.
	imageStylePrefix = "A vibrant, photorealistic, sunny view of a college campus: "

	toolResultImageOK     = "Image generated and shown to the user."
	toolResultImageFailed = "Image generation failed; continue the conversation without it."
	toolResultUnknown     = "Unknown tool; no action taken."

	defaultToolTimeout = 30 * time.Second
)

// GeneratedImage is a rendered illustration produced by a tool call or an
// image collaborator.
type GeneratedImage struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
	Prompt   string `json:"prompt,omitempty"`
}

// ImageGenerator renders an image for the in-session tool call.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)
}

// toolDispatcher executes model tool calls and reports results back over
// the transport. A failing handler never tears the session down; the
// failure rides back to the model as a tool result so it can talk around
// the missing image.
type toolDispatcher struct {
	generator ImageGenerator
	timeout   time.Duration

	send    func(*ClientMessage) error
	onImage func(*GeneratedImage)
	onError func(*core.Error)
}

func newToolDispatcher(generator ImageGenerator, send func(*ClientMessage) error) *toolDispatcher {
	return &toolDispatcher{
		generator: generator,
		timeout:   defaultToolTimeout,
		send:      send,
	}
}

// Dispatch handles every function call in the frame, answering each with
// exactly one correlated result.
func (d *toolDispatcher) Dispatch(ctx context.Context, call *ToolCall) {
	if call == nil {
		return
	}
	for _, fc := range call.FunctionCalls {
		result := d.handle(ctx, fc)
		if err := d.send(NewToolResultMessage(fc.ID, fc.Name, result)); err != nil {
			d.emitError(core.NewTransportError("send tool result", err))
			return
		}
	}
}

func (d *toolDispatcher) handle(ctx context.Context, fc FunctionCall) string {
	if fc.Name != ToolGenerateCollegeImage {
		return toolResultUnknown
	}

	prompt, _ := fc.Args["prompt"].(string)
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || d.generator == nil {
		d.emitError(core.NewToolExecutionError(fc.Name, core.NewInvalidRequestError("missing prompt")))
		return toolResultImageFailed
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	img, err := d.generator.GenerateImage(callCtx, imageStylePrefix+prompt)
	if err != nil {
		d.emitError(core.NewToolExecutionError(fc.Name, err))
		return toolResultImageFailed
	}

	img.Prompt = prompt
	if d.onImage != nil {
		d.onImage(img)
	}
	return toolResultImageOK
}

func (d *toolDispatcher) emitError(err *core.Error) {
	if d.onError != nil {
		d.onError(err)
	}
}
