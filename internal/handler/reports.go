package handler

import (
	"net/http"
	"strconv"

	"almacen/internal/apierror"
	"almacen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReportsHandler struct {
	svc              service.ReportService
	defaultThreshold int
}

func NewReportsHandler(svc service.ReportService, defaultThreshold int) *ReportsHandler {
	return &ReportsHandler{svc: svc, defaultThreshold: defaultThreshold}
}

// ProductStock lists every product with its inventory rows summed.
func (h *ReportsHandler) ProductStock(c *gin.Context) {
	resp, err := h.svc.ProductsWithTotalStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) LowStock(c *gin.Context) {
	threshold := h.defaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, apierror.New("Umbral invalido"))
			return
		}
		threshold = n
	}
	resp, err := h.svc.ProductsWithLowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	resp, err := h.svc.SalesSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) PriceRange(c *gin.Context) {
	min, err := decimal.NewFromString(c.Query("min"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro 'min' invalido"))
		return
	}
	max, err := decimal.NewFromString(c.Query("max"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro 'max' invalido"))
		return
	}
	resp, err := h.svc.ByPriceRange(c.Request.Context(), min, max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
