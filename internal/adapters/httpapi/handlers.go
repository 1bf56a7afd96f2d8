// Package httpapi exposes the allocation services as a JSON API over gin.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/version"
)

// Handlers holds the services the HTTP endpoints delegate to.
type Handlers struct {
	allocations primary.AllocationService
	premises    primary.PremiseService
	resources   primary.ResourceService
	logger      *zap.Logger
}

// NewHandlers creates the HTTP handlers.
func NewHandlers(
	allocations primary.AllocationService,
	premises primary.PremiseService,
	resources primary.ResourceService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		allocations: allocations,
		premises:    premises,
		resources:   resources,
		logger:      logger,
	}
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StatusRequest carries a new value for one of the premise status tracks.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DecisionRequest carries a new decision for a premise.
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// SyncBody is the body of a sync call; the premise comes from the path.
type SyncBody struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// AllocateBody is the body of a single manual allocation.
type AllocateBody struct {
	ResourceID string `json:"resourceId" binding:"required"`
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: version.Version})
}

// HandleListResources handles GET /api/resources.
func (h *Handlers) HandleListResources(c *gin.Context) {
	resources, err := h.resources.ListResources(c.Request.Context(), primary.ResourceFilters{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		SearchID: c.Query("searchId"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// HandleCreateResource handles POST /api/resources.
func (h *Handlers) HandleCreateResource(c *gin.Context) {
	var req primary.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r, err := h.resources.CreateResource(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// HandleListPremises handles GET /api/premises.
func (h *Handlers) HandleListPremises(c *gin.Context) {
	premises, err := h.premises.ListPremises(c.Request.Context(), primary.PremiseFilters{
		SearchID:       c.Query("searchId"),
		DecisionStatus: c.Query("decision"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, premises)
}

// HandleCreatePremise handles POST /api/premises.
func (h *Handlers) HandleCreatePremise(c *gin.Context) {
	var req primary.CreatePremiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.premises.CreatePremise(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// HandleGetPremise handles GET /api/premises/:id.
func (h *Handlers) HandleGetPremise(c *gin.Context) {
	p, err := h.premises.GetPremise(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleTeam handles GET /api/premises/:id/team.
func (h *Handlers) HandleTeam(c *gin.Context) {
	team, err := h.allocations.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// HandleSuggestion handles GET /api/premises/:id/suggestion.
func (h *Handlers) HandleSuggestion(c *gin.Context) {
	s, err := h.allocations.SuggestAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// HandleSync handles POST /api/premises/:id/allocations/sync.
func (h *Handlers) HandleSync(c *gin.Context) {
	var body SyncBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.allocations.SyncAllocations(c.Request.Context(), primary.SyncRequest{
		PremiseID: c.Param("id"),
		Add:       body.Add,
		Remove:    body.Remove,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleAllocate handles POST /api/premises/:id/allocations.
func (h *Handlers) HandleAllocate(c *gin.Context) {
	var body AllocateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.allocations.AllocateResource(c.Request.Context(), primary.AllocateResourceRequest{
		PremiseID:  c.Param("id"),
		ResourceID: body.ResourceID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleRelease handles DELETE /api/premises/:id/allocations.
func (h *Handlers) HandleRelease(c *gin.Context) {
	res, err := h.allocations.ReleasePremise(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleRecce handles POST /api/premises/:id/recce.
func (h *Handlers) HandleRecce(c *gin.Context) {
	var body StatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	h.updated(c, h.premises.SetRecceStatus(c.Request.Context(), c.Param("id"), body.Status))
}

// HandleDecision handles POST /api/premises/:id/decision.
func (h *Handlers) HandleDecision(c *gin.Context) {
	var body DecisionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	h.updated(c, h.premises.SetDecision(c.Request.Context(), c.Param("id"), body.Decision))
}

// HandleAllocationStatus handles POST /api/premises/:id/allocation-status.
func (h *Handlers) HandleAllocationStatus(c *gin.Context) {
	var body StatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	h.updated(c, h.premises.SetAllocationStatus(c.Request.Context(), c.Param("id"), body.Status))
}

// HandleRequirements handles PUT /api/premises/:id/requirements.
func (h *Handlers) HandleRequirements(c *gin.Context) {
	var body primary.Requirements
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	h.updated(c, h.premises.UpdateRequirements(c.Request.Context(), c.Param("id"), body))
}

// HandleAutoAssign handles POST /api/auto-assign.
func (h *Handlers) HandleAutoAssign(c *gin.Context) {
	res, err := h.allocations.AutoAssign(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// updated replies with the premise after a status change.
func (h *Handlers) updated(c *gin.Context, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.HandleGetPremise(c)
}
