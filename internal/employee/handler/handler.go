package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffdir/staffdir/internal/employee"
	"github.com/staffdir/staffdir/internal/employee/repository"
	"github.com/staffdir/staffdir/internal/employee/service"
	"github.com/staffdir/staffdir/pkg/logger"
	"github.com/staffdir/staffdir/pkg/metrics"
	"github.com/staffdir/staffdir/pkg/middleware"
)

// Handler serves the /api/employees routes. Every route requires a valid
// token; create/update/delete additionally require the admin role. Each
// stage short-circuits: a validation failure never reaches the repository.
type Handler struct {
	svc service.Service
}

func New(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the employee routes on the given router.
func (h *Handler) Register(r gin.IRouter, ver middleware.Verifier) {
	g := r.Group("/api/employees", middleware.AuthMiddleware(ver))
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	admin := g.Group("", middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("error fetching employees: %v", err)
		metrics.EmployeeOps.WithLabelValues("list", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching employees"})
		return
	}
	metrics.EmployeeOps.WithLabelValues("list", "ok").Inc()
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.EmployeeOps.WithLabelValues("get", "not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
			return
		}
		logger.Errorf("error fetching employee %s: %v", c.Param("id"), err)
		metrics.EmployeeOps.WithLabelValues("get", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching employee"})
		return
	}
	metrics.EmployeeOps.WithLabelValues("get", "ok").Inc()
	c.JSON(http.StatusOK, e)
}

func (h *Handler) Create(c *gin.Context) {
	var p employee.CreatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		metrics.EmployeeOps.WithLabelValues("create", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	e, err := h.svc.Create(c.Request.Context(), &p)
	if err != nil {
		h.writeError(c, "create", "Error creating employee", err)
		return
	}
	metrics.EmployeeOps.WithLabelValues("create", "ok").Inc()
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) Update(c *gin.Context) {
	var p employee.UpdatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		metrics.EmployeeOps.WithLabelValues("update", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	e, err := h.svc.Update(c.Request.Context(), c.Param("id"), &p)
	if err != nil {
		h.writeError(c, "update", "Error updating employee", err)
		return
	}
	metrics.EmployeeOps.WithLabelValues("update", "ok").Inc()
	c.JSON(http.StatusOK, e)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "delete", "Error deleting employee", err)
		return
	}
	metrics.EmployeeOps.WithLabelValues("delete", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// writeError maps component failures onto response codes. Unexpected errors
// are logged in full and reported with a generic message only.
func (h *Handler) writeError(c *gin.Context, op, generic string, err error) {
	var mf *employee.MissingFieldsError
	var ve *employee.ValidationError
	switch {
	case errors.As(err, &mf):
		metrics.EmployeeOps.WithLabelValues(op, "missing_fields").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields", "fields": mf.Fields})
	case errors.As(err, &ve):
		metrics.EmployeeOps.WithLabelValues(op, "validation_error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": ve.Errors})
	case errors.Is(err, repository.ErrDuplicateEmail):
		metrics.EmployeeOps.WithLabelValues(op, "duplicate_email").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	case errors.Is(err, repository.ErrNotFound):
		metrics.EmployeeOps.WithLabelValues(op, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
	default:
		logger.Errorf("employee %s failed: %v", op, err)
		metrics.EmployeeOps.WithLabelValues(op, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": generic})
	}
}
