package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SuppliersHandler struct {
	svc      service.SupplierService
	mediaDir string
}

func NewSuppliersHandler(svc service.SupplierService, mediaDir string) *SuppliersHandler {
	return &SuppliersHandler{svc: svc, mediaDir: mediaDir}
}

func (h *SuppliersHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SuppliersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.UpdateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage validates first through the service and only writes the file
// to disk once the stored path has been recorded.
func (h *SuppliersHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	data, ext, ok := readImageUpload(c)
	if !ok {
		return
	}
	storedPath := filepath.Join("suppliers", id.String()+ext)
	if err := h.svc.AttachImage(c.Request.Context(), id, data, storedPath); err != nil {
		respondError(c, err)
		return
	}
	dest := filepath.Join(h.mediaDir, storedPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		respondError(c, err)
		return
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": storedPath})
}
