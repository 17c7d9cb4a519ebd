package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/application/usecase"
	"github.com/nexlearn/agenthub/internal/domain/service"
	"github.com/nexlearn/agenthub/internal/domain/valueobject"
	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// AgentHandler handles the creator-scoped agent CRUD endpoints.
type AgentHandler struct {
	agentUC *usecase.AgentUseCase
	logger  *zap.Logger
}

// NewAgentHandler creates a handler for agent CRUD
func NewAgentHandler(agentUC *usecase.AgentUseCase, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agentUC: agentUC,
		logger:  logger.With(zap.String("handler", "agent")),
	}
}

// Create handles POST /creator/agents
func (h *AgentHandler) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, domainErrors.NewInvalidInputError("request body must be a JSON object"))
		return
	}

	agent, err := h.agentUC.Create(c.Request.Context(), payload)
	if err != nil {
		h.logError("create agent failed", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Agent created successfully", agent)
}

// List handles GET /creator/agents?creator_id=<id>
func (h *AgentHandler) List(c *gin.Context) {
	creatorID, ok := queryUint(c, "creator_id")
	if !ok {
		respondError(c, domainErrors.NewInvalidInputError("creator_id query parameter is required"))
		return
	}

	agents, err := h.agentUC.List(c.Request.Context(), creatorID)
	if err != nil {
		h.logError("list agents failed", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Agents retrieved successfully", agents)
}

// Get handles GET /creator/agents/:id?creator_id=<id>
func (h *AgentHandler) Get(c *gin.Context) {
	ref, err := valueobject.ParseAgentRef(c.Param("id"))
	if err != nil {
		respondError(c, domainErrors.NewInvalidInputError("agent id must be a positive integer or a UUID"))
		return
	}
	creatorID, ok := queryUint(c, "creator_id")
	if !ok {
		respondError(c, domainErrors.NewInvalidInputError("creator_id query parameter is required"))
		return
	}

	agent, err := h.agentUC.Get(c.Request.Context(), ref, creatorID)
	if err != nil {
		h.logError("get agent failed", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Agent retrieved successfully", agent)
}

// Update handles PUT /creator/agents/:id — creator_id travels in the body
// together with the partial update fields.
func (h *AgentHandler) Update(c *gin.Context) {
	ref, err := valueobject.ParseAgentRef(c.Param("id"))
	if err != nil {
		respondError(c, domainErrors.NewInvalidInputError("agent id must be a positive integer or a UUID"))
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, domainErrors.NewInvalidInputError("request body must be a JSON object"))
		return
	}

	creatorID, ok := service.PayloadUint(payload, "creator_id")
	if !ok || creatorID == 0 {
		respondError(c, domainErrors.NewInvalidInputError("creator_id is required and must be a positive integer"))
		return
	}

	agent, err := h.agentUC.Update(c.Request.Context(), ref, creatorID, payload)
	if err != nil {
		h.logError("update agent failed", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Agent updated successfully", agent)
}

// Delete handles DELETE /creator/agents/:id?creator_id=<id>
func (h *AgentHandler) Delete(c *gin.Context) {
	ref, err := valueobject.ParseAgentRef(c.Param("id"))
	if err != nil {
		respondError(c, domainErrors.NewInvalidInputError("agent id must be a positive integer or a UUID"))
		return
	}
	creatorID, ok := queryUint(c, "creator_id")
	if !ok {
		respondError(c, domainErrors.NewInvalidInputError("creator_id query parameter is required"))
		return
	}

	id, err := h.agentUC.Delete(c.Request.Context(), ref, creatorID)
	if err != nil {
		h.logError("delete agent failed", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Agent deleted successfully", gin.H{"id": id})
}

// logError keeps 4xx noise at debug; real failures go to error level
func (h *AgentHandler) logError(msg string, err error) {
	if domainErrors.StatusOf(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
		return
	}
	h.logger.Debug(msg, zap.Error(err))
}

// queryUint parses a positive integer query parameter
func queryUint(c *gin.Context, name string) (uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
