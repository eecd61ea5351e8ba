package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/pkg/extract"
	"github.com/YongERong/wth-caifan-lovers/pkg/voice"
)

// maxAudioBytes upper bound for one uploaded recording
const maxAudioBytes = 25 << 20

// VoiceHandler speech-to-profile endpoints
type VoiceHandler struct {
	processor *voice.Processor
	pipeline  *extract.Pipeline
	logger    *zap.Logger
}

func NewVoiceHandler(processor *voice.Processor, pipeline *extract.Pipeline, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{processor: processor, pipeline: pipeline, logger: logger}
}

// Transcribe forwards an uploaded recording to the speech service and extracts fields
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart field 'file' is required"})
		return
	}
	if fileHeader.Size > maxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Recording is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read recording"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read recording"})
		return
	}

	var chunks []voice.Chunk
	if len(data) > 0 {
		chunks = append(chunks, voice.Chunk{Data: data, Type: fileHeader.Header.Get("Content-Type")})
	}

	result, err := h.processor.Process(c.Request.Context(), chunks)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, voice.ErrNoAudio) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Extract runs field extraction on text the client already has
func (h *VoiceHandler) Extract(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.pipeline.Extract(c.Request.Context(), req.Text))
}
