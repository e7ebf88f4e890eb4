package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/product-ms/internal/app/dto"
	"github.com/mrops-br/product-ms/internal/app/service"
	"github.com/mrops-br/product-ms/internal/domain"
	"github.com/mrops-br/product-ms/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products and subscriptions
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductDTO
	if !h.decode(w, r, &req) {
		return
	}

	id, err := h.service.AddProduct(r.Context(), &req)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.CreateProductResponse{ProductID: id})
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ViewAllProducts(r.Context())
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// GetProductByName handles GET /products/name/{name}
func (h *ProductHandler) GetProductByName(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// GetProductsByCategory handles GET /products/category/{category}
func (h *ProductHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetProductsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.MessageResponse{Message: msg})
}

// UpdateStock handles PUT /products/{id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req dto.StockRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateStock(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.StockResponse{Updated: updated})
}

// ReduceStock handles PUT /products/{id}/stock/reduce
func (h *ProductHandler) ReduceStock(w http.ResponseWriter, r *http.Request) {
	var req dto.StockRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Quantity < 0 {
		response.Error(w, http.StatusBadRequest, domain.NewValidationError("quantity must not be negative"))
		return
	}

	updated, err := h.service.ReduceStock(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.StockResponse{Updated: updated})
}

// DeleteSellerProducts handles DELETE /sellers/{sellerId}/products
func (h *ProductHandler) DeleteSellerProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSellerProducts(r.Context(), chi.URLParam(r, "sellerId")); err != nil {
		response.ServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteDeactivatedSellerProducts handles DELETE /sellers/{sellerId}/deactivated/products
func (h *ProductHandler) DeleteDeactivatedSellerProducts(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.DeleteProductsOfDeactivatedSeller(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.MessageResponse{Message: msg})
}

// AddSubscription handles POST /subscriptions
func (h *ProductHandler) AddSubscription(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := h.service.AddSubscription(r.Context(), &req.Subscription, &req.Buyer)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.MessageResponse{Message: msg})
}

// GetSubscription handles GET /subscriptions/{buyerId}/{prodId}
func (h *ProductHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	subscription, err := h.service.GetSubscriptionDetails(r.Context(), chi.URLParam(r, "buyerId"), chi.URLParam(r, "prodId"))
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, subscription)
}

func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
