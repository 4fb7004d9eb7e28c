package live

import (
	"encoding/base64"
	"encoding/json"
)

// Wire types for the bidirectional generate-content protocol. Field names
// follow the service's camelCase JSON exactly.

// ToolGenerateCollegeImage is the function name the model may call to
// request a campus illustration mid-conversation.
const ToolGenerateCollegeImage = "generateCollegeImage"

const pcmInputMIME = "audio/pcm;rate=16000"

// ClientMessage is a single outbound frame. Exactly one field is set.
type ClientMessage struct {
	Setup         *SetupConfig   `json:"setup,omitempty"`
	RealtimeInput *RealtimeInput `json:"realtimeInput,omitempty"`
	ClientContent *ClientContent `json:"clientContent,omitempty"`
	ToolResponse  *ToolResponse  `json:"toolResponse,omitempty"`
}

// SetupConfig is the first frame on a new connection.
type SetupConfig struct {
	Model             string            `json:"model"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
}

// GenerationConfig selects output modalities and the speech voice.
type GenerationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *SpeechConfig `json:"speechConfig,omitempty"`
}

// SpeechConfig wraps the prebuilt voice selection.
type SpeechConfig struct {
	VoiceConfig VoiceConfig `json:"voiceConfig"`
}

// VoiceConfig wraps PrebuiltVoiceConfig.
type VoiceConfig struct {
	PrebuiltVoiceConfig PrebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

// PrebuiltVoiceConfig names a stock voice preset.
type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// Tool declares callable functions to the model.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations,omitempty"`
}

// FunctionDeclaration describes one callable function.
type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Schema is a minimal subset of the service's OpenAPI-style schema type.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// RealtimeInput streams media chunks outside the turn structure.
type RealtimeInput struct {
	MediaChunks []Blob `json:"mediaChunks,omitempty"`
}

// ClientContent submits structured turns.
type ClientContent struct {
	Turns        []Content `json:"turns,omitempty"`
	TurnComplete bool      `json:"turnComplete"`
}

// Content is a role-tagged list of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Part is a single text or inline-media fragment.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob carries base64-encoded media.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// ToolResponse answers one or more tool calls.
type ToolResponse struct {
	FunctionResponses []FunctionResponse `json:"functionResponses,omitempty"`
}

// FunctionResponse correlates a result with its originating call by ID.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// ServerMessage is a single inbound frame. Unknown top-level fields are
// ignored so new server message kinds never break the read loop.
type ServerMessage struct {
	SetupComplete *SetupComplete `json:"setupComplete,omitempty"`
	ServerContent *ServerContent `json:"serverContent,omitempty"`
	ToolCall      *ToolCall      `json:"toolCall,omitempty"`
}

// SetupComplete acknowledges the setup frame.
type SetupComplete struct{}

// ServerContent carries model output and turn-control flags.
type ServerContent struct {
	ModelTurn    *Content `json:"modelTurn,omitempty"`
	Interrupted  bool     `json:"interrupted,omitempty"`
	TurnComplete bool     `json:"turnComplete,omitempty"`
}

// ToolCall requests client-side function execution.
type ToolCall struct {
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
}

// FunctionCall is one requested invocation.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// DecodeServerMessage parses an inbound frame. Frames that parse as JSON
// but carry no recognized field decode to an empty message; callers skip
// those.
func DecodeServerMessage(data []byte) (*ServerMessage, error) {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AudioChunks returns the decoded PCM payload of every inline audio part
// in the message, in part order.
func (m *ServerMessage) AudioChunks() [][]byte {
	if m == nil || m.ServerContent == nil || m.ServerContent.ModelTurn == nil {
		return nil
	}
	var chunks [][]byte
	for _, part := range m.ServerContent.ModelTurn.Parts {
		if part.InlineData == nil || part.InlineData.Data == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			continue
		}
		chunks = append(chunks, raw)
	}
	return chunks
}

// Interrupted reports whether the frame signals a model-side barge-in.
func (m *ServerMessage) Interrupted() bool {
	return m != nil && m.ServerContent != nil && m.ServerContent.Interrupted
}

// NewSetupMessage builds the opening frame for the given configuration.
func NewSetupMessage(cfg SessionConfig) *ClientMessage {
	return &ClientMessage{
		Setup: &SetupConfig{
			Model: cfg.Model,
			GenerationConfig: &GenerationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &SpeechConfig{
					VoiceConfig: VoiceConfig{
						PrebuiltVoiceConfig: PrebuiltVoiceConfig{VoiceName: cfg.Mode.Voice()},
					},
				},
			},
			SystemInstruction: &Content{
				Parts: []Part{{Text: cfg.SystemInstruction}},
			},
			Tools: []Tool{{
				FunctionDeclarations: []FunctionDeclaration{{
					Name:        ToolGenerateCollegeImage,
					Description: "Generates an illustrative image of a college campus, facility, or scene to show the student.",
					Parameters: &Schema{
						Type: "OBJECT",
						Properties: map[string]*Schema{
							"prompt": {
								Type:        "STRING",
								Description: "A detailed visual description of the image to generate.",
							},
						},
						Required: []string{"prompt"},
					},
				}},
			}},
		},
	}
}

// NewAudioFrameMessage wraps one encoded capture frame.
func NewAudioFrameMessage(pcm []byte) *ClientMessage {
	return &ClientMessage{
		RealtimeInput: &RealtimeInput{
			MediaChunks: []Blob{{
				MIMEType: pcmInputMIME,
				Data:     base64.StdEncoding.EncodeToString(pcm),
			}},
		},
	}
}

// NewMediaMessage wraps an uploaded document as a realtime media chunk.
func NewMediaMessage(mimeType string, data []byte) *ClientMessage {
	return &ClientMessage{
		RealtimeInput: &RealtimeInput{
			MediaChunks: []Blob{{
				MIMEType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(data),
			}},
		},
	}
}

// NewTextTurnMessage submits text as a complete user turn.
func NewTextTurnMessage(text string) *ClientMessage {
	return &ClientMessage{
		ClientContent: &ClientContent{
			Turns: []Content{{
				Role:  "user",
				Parts: []Part{{Text: text}},
			}},
			TurnComplete: true,
		},
	}
}

// NewToolResultMessage answers a tool call with a short status string.
func NewToolResultMessage(id, name, result string) *ClientMessage {
	return &ClientMessage{
		ToolResponse: &ToolResponse{
			FunctionResponses: []FunctionResponse{{
				ID:       id,
				Name:     name,
				Response: map[string]any{"result": result},
			}},
		},
	}
}
