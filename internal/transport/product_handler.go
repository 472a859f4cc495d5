package transport

import (
	"encoding/json"
	"net/http"

	"product-management/internal/domain"
	"product-management/internal/middleware"
	"product-management/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			if rateLimit != nil {
				r.Use(rateLimit)
			}
			r.Post("/", h.Create)
		})
	})
}

// Create handles product creation. Validation rejections come back as a 400
// with the field→messages mapping; store failures are 500s.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Product creation decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, result, err := h.productService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	if result != nil && !result.Valid() {
		middleware.RespondWithValidationErrors(w, result.ByField())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// List handles the full product listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Product listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}
