package live

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestDecodeServerMessage(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4})

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, msg *ServerMessage)
	}{
		{
			name:  "setup complete",
			input: `{"setupComplete":{}}`,
			check: func(t *testing.T, msg *ServerMessage) {
				if msg.SetupComplete == nil {
					t.Error("SetupComplete should be set")
				}
			},
		},
		{
			name:  "audio chunk",
			input: `{"serverContent":{"modelTurn":{"parts":[{"inlineData":{"mimeType":"audio/pcm;rate=24000","data":"` + audio + `"}}]}}}`,
			check: func(t *testing.T, msg *ServerMessage) {
				chunks := msg.AudioChunks()
				if len(chunks) != 1 {
					t.Fatalf("chunks = %d, want 1", len(chunks))
				}
				if len(chunks[0]) != 4 || chunks[0][0] != 1 {
					t.Errorf("chunk payload = %v", chunks[0])
				}
			},
		},
		{
			name:  "interrupted",
			input: `{"serverContent":{"interrupted":true}}`,
			check: func(t *testing.T, msg *ServerMessage) {
				if !msg.Interrupted() {
					t.Error("Interrupted() should be true")
				}
				if len(msg.AudioChunks()) != 0 {
					t.Error("no audio expected")
				}
			},
		},
		{
			name:  "tool call",
			input: `{"toolCall":{"functionCalls":[{"id":"call-1","name":"generateCollegeImage","args":{"prompt":"a campus"}}]}}`,
			check: func(t *testing.T, msg *ServerMessage) {
				if msg.ToolCall == nil || len(msg.ToolCall.FunctionCalls) != 1 {
					t.Fatal("expected one function call")
				}
				fc := msg.ToolCall.FunctionCalls[0]
				if fc.ID != "call-1" || fc.Name != ToolGenerateCollegeImage {
					t.Errorf("call = %+v", fc)
				}
				if prompt, _ := fc.Args["prompt"].(string); prompt != "a campus" {
					t.Errorf("prompt = %q", prompt)
				}
			},
		},
		{
			name:  "unknown message kind decodes empty",
			input: `{"usageMetadata":{"totalTokens":12}}`,
			check: func(t *testing.T, msg *ServerMessage) {
				if msg.SetupComplete != nil || msg.ServerContent != nil || msg.ToolCall != nil {
					t.Error("unknown frame should decode to empty message")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeServerMessage([]byte(tt.input))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			tt.check(t, msg)
		})
	}
}

func TestDecodeServerMessage_InvalidJSON(t *testing.T) {
	if _, err := DecodeServerMessage([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestAudioChunks_SkipsBadBase64(t *testing.T) {
	msg := &ServerMessage{
		ServerContent: &ServerContent{
			ModelTurn: &Content{
				Parts: []Part{
					{InlineData: &Blob{MIMEType: "audio/pcm", Data: "!!!not-base64!!!"}},
					{InlineData: &Blob{MIMEType: "audio/pcm", Data: base64.StdEncoding.EncodeToString([]byte{9})}},
					{Text: "ignore me"},
				},
			},
		},
	}
	chunks := msg.AudioChunks()
	if len(chunks) != 1 || chunks[0][0] != 9 {
		t.Errorf("chunks = %v, want single decodable chunk", chunks)
	}
}

func TestNewAudioFrameMessage(t *testing.T) {
	pcm := []byte{0x10, 0x20}
	msg := NewAudioFrameMessage(pcm)

	if msg.RealtimeInput == nil || len(msg.RealtimeInput.MediaChunks) != 1 {
		t.Fatal("expected one media chunk")
	}
	chunk := msg.RealtimeInput.MediaChunks[0]
	if chunk.MIMEType != "audio/pcm;rate=16000" {
		t.Errorf("mime = %q", chunk.MIMEType)
	}
	decoded, err := base64.StdEncoding.DecodeString(chunk.Data)
	if err != nil || len(decoded) != 2 || decoded[0] != 0x10 {
		t.Errorf("payload roundtrip failed: %v %v", decoded, err)
	}
}

func TestNewToolResultMessage(t *testing.T) {
	msg := NewToolResultMessage("id-7", ToolGenerateCollegeImage, "done")

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	tr, ok := decoded["toolResponse"].(map[string]any)
	if !ok {
		t.Fatalf("missing toolResponse: %s", raw)
	}
	responses, ok := tr["functionResponses"].([]any)
	if !ok || len(responses) != 1 {
		t.Fatalf("functionResponses shape: %s", raw)
	}
	first := responses[0].(map[string]any)
	if first["id"] != "id-7" || first["name"] != ToolGenerateCollegeImage {
		t.Errorf("correlation fields: %v", first)
	}
	resp := first["response"].(map[string]any)
	if resp["result"] != "done" {
		t.Errorf("result = %v", resp["result"])
	}
}

func TestNewSetupMessage_VoiceByMode(t *testing.T) {
	tests := []struct {
		mode  Mode
		voice string
	}{
		{ModeCounselor, "Zephyr"},
		{ModeTrainee, "Puck"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg := DefaultSessionConfig()
			cfg.Mode = tt.mode
			cfg.SystemInstruction = "persona"

			msg := NewSetupMessage(cfg)
			if msg.Setup == nil {
				t.Fatal("Setup should be set")
			}
			if msg.Setup.Model != DefaultModel {
				t.Errorf("model = %q", msg.Setup.Model)
			}
			gc := msg.Setup.GenerationConfig
			if gc == nil || len(gc.ResponseModalities) != 1 || gc.ResponseModalities[0] != "AUDIO" {
				t.Errorf("modalities = %+v", gc)
			}
			got := gc.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName
			if got != tt.voice {
				t.Errorf("voice = %q, want %q", got, tt.voice)
			}
			if msg.Setup.SystemInstruction.Parts[0].Text != "persona" {
				t.Error("system instruction not carried")
			}
			if len(msg.Setup.Tools) != 1 || msg.Setup.Tools[0].FunctionDeclarations[0].Name != ToolGenerateCollegeImage {
				t.Error("image tool not declared")
			}
		})
	}
}

func TestNewTextTurnMessage(t *testing.T) {
	msg := NewTextTurnMessage("hello")
	cc := msg.ClientContent
	if cc == nil || !cc.TurnComplete {
		t.Fatal("turnComplete should be true")
	}
	if len(cc.Turns) != 1 || cc.Turns[0].Role != "user" || cc.Turns[0].Parts[0].Text != "hello" {
		t.Errorf("turns = %+v", cc.Turns)
	}
}
