package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/gadgetvault-backend/internal/apierr"
  "github.com/yungbote/gadgetvault-backend/internal/services"
  "github.com/yungbote/gadgetvault-backend/internal/types"
)

type GadgetHandler struct {
  gadgetService     services.GadgetService
}

func NewGadgetHandler(gadgetService services.GadgetService) *GadgetHandler {
  return &GadgetHandler{gadgetService: gadgetService}
}

func (gh *GadgetHandler) List(c *gin.Context) {
  var status *types.GadgetStatus
  if raw := c.Query("status"); raw != "" {
    parsed, ok := types.ParseGadgetStatus(raw)
    if !ok {
      RespondError(c, http.StatusBadRequest, apierr.CodeValidationFailed, apierr.Validation("unknown status %q", raw))
      return
    }
    status = &parsed
  }
  search := c.Query("search")

  gadgets, err := gh.gadgetService.ListGadgets(c.Request.Context(), status, search)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"gadgets": gadgets})
}

func (gh *GadgetHandler) Get(c *gin.Context) {
  gadgetID, ok := parseGadgetID(c)
  if !ok {
    return
  }
  gadget, err := gh.gadgetService.GetGadget(c.Request.Context(), gadgetID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"gadget": gadget})
}

func (gh *GadgetHandler) Create(c *gin.Context) {
  var req struct {
    Name        string      `json:"name"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidationFailed, err)
    return
  }
  gadget, err := gh.gadgetService.CreateGadget(c.Request.Context(), req.Name)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"gadget": gadget})
}

func (gh *GadgetHandler) Update(c *gin.Context) {
  gadgetID, ok := parseGadgetID(c)
  if !ok {
    return
  }
  var req struct {
    Name        *string     `json:"name"`
    Status      *string     `json:"status"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidationFailed, err)
    return
  }
  var status *types.GadgetStatus
  if req.Status != nil {
    parsed, valid := types.ParseGadgetStatus(*req.Status)
    if !valid {
      RespondError(c, http.StatusBadRequest, apierr.CodeValidationFailed, apierr.Validation("unknown status %q", *req.Status))
      return
    }
    status = &parsed
  }
  gadget, err := gh.gadgetService.UpdateGadget(c.Request.Context(), gadgetID, req.Name, status)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"gadget": gadget})
}

// Decommission handles DELETE. A gadget is never physically deleted:
// removal is the Decommissioned status with a timestamp.
func (gh *GadgetHandler) Decommission(c *gin.Context) {
  gadgetID, ok := parseGadgetID(c)
  if !ok {
    return
  }
  gadget, err := gh.gadgetService.DecommissionGadget(c.Request.Context(), gadgetID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"gadget": gadget})
}

func (gh *GadgetHandler) SelfDestruct(c *gin.Context) {
  gadgetID, ok := parseGadgetID(c)
  if !ok {
    return
  }
  gadget, confirmationCode, err := gh.gadgetService.SelfDestructGadget(c.Request.Context(), gadgetID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "message":           "Self-destruct sequence initiated",
    "confirmation_code": confirmationCode,
    "gadget":            gadget,
  })
}

func parseGadgetID(c *gin.Context) (uuid.UUID, bool) {
  gadgetID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidationFailed, apierr.Validation("invalid gadget id"))
    return uuid.Nil, false
  }
  return gadgetID, true
}
