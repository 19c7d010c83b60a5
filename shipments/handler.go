package shipments

import (
	"context"
	"github.com/gin-gonic/gin"
	"invoice-service/api"
	"invoice-service/core"
	"invoice-service/shipments/models"
	"net/http"
	"strconv"
)

const entityName = "Shipment"

// Operations is what the REST handler needs from the shipment service.
type Operations interface {
	Save(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error)
	Update(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error)
	PartialUpdate(ctx context.Context, patch *models.ShipmentPatch) (*models.Shipment, error)
	FindAll(ctx context.Context, page *core.Pageable) ([]models.Shipment, error)
	FindAllWithEagerRelationships(ctx context.Context, page *core.Pageable) ([]models.Shipment, error)
	CountAll(ctx context.Context) (int64, error)
	FindOne(ctx context.Context, id int64) (*models.Shipment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	svc Operations
}

func NewHandler(svc Operations) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the shipment endpoints on group (usually /api).
func RegisterRoutes(group *gin.RouterGroup, h *Handler) {
	group.POST("/shipments", h.Create)
	group.PUT("/shipments/:id", h.Update)
	group.PATCH("/shipments/:id", h.PartialUpdate)
	group.GET("/shipments", h.List)
	group.GET("/shipments/:id", h.Get)
	group.DELETE("/shipments/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var shipment models.Shipment
	if err := c.ShouldBindJSON(&shipment); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	if shipment.ID != 0 {
		api.ErrorResponse(c, http.StatusBadRequest, "idexists", "A new shipment cannot already have an ID")
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), &shipment)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.Header("Location", "/api/shipments/"+strconv.FormatInt(saved.ID, 10))
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := api.PathID(c)
	if !ok {
		return
	}

	var shipment models.Shipment
	if err := c.ShouldBindJSON(&shipment); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	if !api.CheckBodyID(c, id, shipment.ID) || !h.exists(c, id) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), &shipment)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) PartialUpdate(c *gin.Context) {
	id, ok := api.PathID(c)
	if !ok {
		return
	}

	var patch models.ShipmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	if !api.CheckBodyID(c, id, patch.ID) || !h.exists(c, id) {
		return
	}

	updated, err := h.svc.PartialUpdate(c.Request.Context(), &patch)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) List(c *gin.Context) {
	page, err := api.ParsePageable(c)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	eager, err := strconv.ParseBool(c.DefaultQuery("eagerload", "true"))
	if err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "invalid", "eagerload must be a boolean")
		return
	}

	ctx := c.Request.Context()
	var shipments []models.Shipment
	if eager {
		shipments, err = h.svc.FindAllWithEagerRelationships(ctx, page)
	} else {
		shipments, err = h.svc.FindAll(ctx, page)
	}
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	total, err := h.svc.CountAll(ctx)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	api.SetPaginationHeaders(c, page, total)
	c.JSON(http.StatusOK, shipments)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := api.PathID(c)
	if !ok {
		return
	}

	shipment, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.JSON(http.StatusOK, shipment)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.PathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) exists(c *gin.Context, id int64) bool {
	exists, err := h.svc.Exists(c.Request.Context(), id)
	if err != nil {
		api.HandleError(c, entityName, err)
		return false
	}
	if !exists {
		api.HandleError(c, entityName, core.ErrNotFound)
		return false
	}
	return true
}
