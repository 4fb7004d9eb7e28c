package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/collegegate/collegegate/pkg/core"
	"github.com/collegegate/collegegate/pkg/core/counselor"
	"github.com/collegegate/collegegate/pkg/core/live"
)

// CampusMediaService generates and edits campus imagery and videos.
// *counselor.Client satisfies it.
type CampusMediaService interface {
	GenerateImage(ctx context.Context, prompt string) (*live.GeneratedImage, error)
	EditCampusImage(ctx context.Context, image []byte, mimeType, instruction string) (*live.GeneratedImage, error)
	GenerateCampusVideo(ctx context.Context, req counselor.VideoRequest) (*counselor.GeneratedVideo, error)
}

// CampusImageHandler renders a new campus image, or edits an uploaded
// one when the request carries image data.
//
//	POST /v1/campus/image
type CampusImageHandler struct {
	Media CampusMediaService
}

type campusImageRequest struct {
	Prompt string `json:"prompt"`
	// Edit mode: base64 source image plus its MIME type.
	Image    string `json:"image,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

type campusImageResponse struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

func (h CampusImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req campusImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var img *live.GeneratedImage
	var err error
	if strings.TrimSpace(req.Image) != "" {
		var source []byte
		source, err = base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			writeError(w, r, core.NewInvalidRequestErrorWithParam("image must be base64", "image"))
			return
		}
		img, err = h.Media.EditCampusImage(r.Context(), source, req.MIMEType, req.Prompt)
	} else {
		img, err = h.Media.GenerateImage(r.Context(), req.Prompt)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campusImageResponse{
		MIMEType: img.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	})
}

// CampusVideoHandler produces a short campus fly-through clip.
//
//	POST /v1/campus/video
type CampusVideoHandler struct {
	Media CampusMediaService
}

type campusVideoRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
}

func (h CampusVideoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req campusVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	video, err := h.Media.GenerateCampusVideo(r.Context(), counselor.VideoRequest{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}
