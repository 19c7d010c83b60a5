package invoices

import (
	"context"
	"github.com/gin-gonic/gin"
	"invoice-service/api"
	"invoice-service/core"
	"invoice-service/invoices/models"
	"net/http"
	"strconv"
)

const entityName = "Invoice"

// Operations is what the REST handler needs from the invoice service.
type Operations interface {
	Save(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	PartialUpdate(ctx context.Context, patch *models.InvoicePatch) (*models.Invoice, error)
	FindAll(ctx context.Context, page *core.Pageable) ([]models.Invoice, error)
	CountAll(ctx context.Context) (int64, error)
	FindOne(ctx context.Context, id int64) (*models.Invoice, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	svc Operations
}

func NewHandler(svc Operations) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the invoice endpoints on group (usually /api).
func RegisterRoutes(group *gin.RouterGroup, h *Handler) {
	group.POST("/invoices", h.Create)
	group.PUT("/invoices/:id", h.Update)
	group.PATCH("/invoices/:id", h.PartialUpdate)
	group.GET("/invoices", h.List)
	group.GET("/invoices/:id", h.Get)
	group.DELETE("/invoices/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	invoice, ok := bindInvoice(c)
	if !ok {
		return
	}
	if invoice.ID != 0 {
		api.ErrorResponse(c, http.StatusBadRequest, "idexists", "A new invoice cannot already have an ID")
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), invoice)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.Header("Location", "/api/invoices/"+strconv.FormatInt(saved.ID, 10))
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := api.PathID(c)
	if !ok {
		return
	}

	invoice, ok := bindInvoice(c)
	if !ok {
		return
	}
	if !api.CheckBodyID(c, id, invoice.ID) || !h.exists(c, id) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), invoice)
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

	var patch models.InvoicePatch
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

	ctx := c.Request.Context()
	invoices, err := h.svc.FindAll(ctx, page)
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
	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := api.PathID(c)
	if !ok {
		return
	}

	invoice, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		api.HandleError(c, entityName, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
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

func bindInvoice(c *gin.Context) (*models.Invoice, bool) {
	var input models.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "invalid", err.Error())
		return nil, false
	}
	invoice, err := input.Invoice()
	if err != nil {
		api.HandleError(c, entityName, err)
		return nil, false
	}
	return invoice, true
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
