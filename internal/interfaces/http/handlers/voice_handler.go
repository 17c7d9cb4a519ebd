package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/application/usecase"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// VoiceHandler handles per-user voice selection endpoints.
type VoiceHandler struct {
	voiceUC *usecase.VoiceUseCase
	logger  *zap.Logger
}

// NewVoiceHandler creates a handler for voice selections
func NewVoiceHandler(voiceUC *usecase.VoiceUseCase, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		voiceUC: voiceUC,
		logger:  logger.With(zap.String("handler", "voice")),
	}
}

// CloneRequest is the JSON body for POST /voices/clone
type CloneRequest struct {
	UserID  uint64 `json:"user_id" binding:"required"`
	VoiceID string `json:"voice_id" binding:"required"`
}

// Clone handles POST /voices/clone — idempotent: re-saving an already saved
// voice succeeds with a distinct message instead of failing.
func (h *VoiceHandler) Clone(c *gin.Context) {
	var req CloneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domainErrors.NewInvalidInputError("user_id and voice_id are required"))
		return
	}

	voice, existed, err := h.voiceUC.Clone(c.Request.Context(), req.UserID, req.VoiceID)
	if err != nil {
		h.logger.Error("clone voice failed", zap.Error(err))
		respondError(c, err)
		return
	}

	if existed {
		respondOK(c, http.StatusOK, "Voice already saved", voice)
		return
	}
	respondOK(c, http.StatusCreated, "Voice saved successfully", voice)
}

// List handles GET /voices?user_id=<id>
func (h *VoiceHandler) List(c *gin.Context) {
	userID, ok := queryUint(c, "user_id")
	if !ok {
		respondError(c, domainErrors.NewInvalidInputError("user_id query parameter is required"))
		return
	}

	voices, err := h.voiceUC.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list voices failed", zap.Error(err))
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Voices retrieved successfully", voices)
}

// Delete handles DELETE /voices/:voice_id?user_id=<id>
func (h *VoiceHandler) Delete(c *gin.Context) {
	userID, ok := queryUint(c, "user_id")
	if !ok {
		respondError(c, domainErrors.NewInvalidInputError("user_id query parameter is required"))
		return
	}
	voiceID := c.Param("voice_id")

	if err := h.voiceUC.Delete(c.Request.Context(), userID, voiceID); err != nil {
		if domainErrors.StatusOf(err) >= http.StatusInternalServerError {
			h.logger.Error("delete voice failed", zap.Error(err))
		}
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Voice deleted successfully", gin.H{"voice_id": voiceID})
}
