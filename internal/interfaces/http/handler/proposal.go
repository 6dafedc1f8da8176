package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	proposalapp "github.com/posalpro/backend/internal/application/proposal"
)

// ProposalHandler handles proposal API endpoints: the draft lifecycle,
// line items, workflow transitions, and version history
type ProposalHandler struct {
	BaseHandler
	proposalService *proposalapp.ProposalService
	versionService  *proposalapp.VersionService
}

// NewProposalHandler creates a new ProposalHandler
func NewProposalHandler(proposalService *proposalapp.ProposalService, versionService *proposalapp.VersionService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		versionService:  versionService,
	}
}

// Create handles POST /proposals
func (h *ProposalHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req proposalapp.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proposalService.Create(c.Request.Context(), tenantID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /proposals/:id
func (h *ProposalHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}

	resp, err := h.proposalService.GetByID(c.Request.Context(), tenantID, proposalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /proposals
func (h *ProposalHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter proposalapp.ProposalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.proposalService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT and PATCH /proposals/:id
func (h *ProposalHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}

	var req proposalapp.UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proposalService.Update(c.Request.Context(), tenantID, proposalID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddLineItem handles POST /proposals/:id/items
func (h *ProposalHandler) AddLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}

	var req proposalapp.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proposalService.AddLineItem(c.Request.Context(), tenantID, proposalID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateLineItem handles PUT /proposals/:id/items/:productId
func (h *ProposalHandler) UpdateLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req proposalapp.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proposalService.UpdateLineItem(c.Request.Context(), tenantID, proposalID, productID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveLineItem handles DELETE /proposals/:id/items/:productId
func (h *ProposalHandler) RemoveLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.proposalService.RemoveLineItem(c.Request.Context(), tenantID, proposalID, productID, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transition handles POST /proposals/:id/transition
func (h *ProposalHandler) Transition(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}

	var req proposalapp.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proposalService.Transition(c.Request.Context(), tenantID, proposalID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /proposals/:id
func (h *ProposalHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}

	if err := h.proposalService.Delete(c.Request.Context(), tenantID, proposalID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListVersions handles GET /proposals/:id/versions
func (h *ProposalHandler) ListVersions(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}

	versions, err := h.versionService.List(c.Request.Context(), tenantID, proposalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, versions)
}

// GetVersion handles GET /proposals/:id/versions/:number
func (h *ProposalHandler) GetVersion(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		h.BadRequest(c, "Invalid version number")
		return
	}

	resp, err := h.versionService.Get(c.Request.Context(), tenantID, proposalID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DiffVersions handles GET /proposals/:id/diff?from=1&to=3
func (h *ProposalHandler) DiffVersions(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	proposalID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proposal ID")
		return
	}
	from, err := strconv.Atoi(c.Query("from"))
	if err != nil || from < 1 {
		h.BadRequest(c, "Invalid 'from' version number")
		return
	}
	to, err := strconv.Atoi(c.Query("to"))
	if err != nil || to < 1 {
		h.BadRequest(c, "Invalid 'to' version number")
		return
	}

	diff, err := h.versionService.Diff(c.Request.Context(), tenantID, proposalID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, diff)
}
