package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"bank-records/internal/api/handler/dto"
	"bank-records/internal/domain/product"
	"bank-records/internal/domain/registry"
)

// DetailsHandler serves the create, fetch, update and delete endpoints of one product kind.
// D is the wire form of the product record P.
type DetailsHandler[P, D any] struct {
	kind      product.Kind
	service   registry.Service[P]
	mapper    dto.ProductMapper[P, D]
	validator *dto.Validator
	logger    *slog.Logger
}

func NewDetailsHandler[P, D any](kind product.Kind, s registry.Service[P], m dto.ProductMapper[P, D], v *dto.Validator, l *slog.Logger) *DetailsHandler[P, D] {
	if s == nil {
		panic("registry service cannot be nil for DetailsHandler")
	}
	if m == nil || v == nil {
		panic("mapper and validator cannot be nil for DetailsHandler")
	}
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		l.Warn("Warning: No logger provided to NewDetailsHandler, using default stderr handler")
	}
	return &DetailsHandler[P, D]{
		kind:      kind,
		service:   s,
		mapper:    m,
		validator: v,
		logger:    l.With("component", "DetailsHandler", "kind", string(kind)),
	}
}

// CreateDetails registers a customer and issues the service's product to them.
//
// @Summary Register a customer and issue a product
// @Description Creates the customer and a product of the kind this service manages (account, card or loan) with default values and a freshly generated number.
// @Tags Details
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.StatusResponse "Customer and product created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or mobile number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/create [post]
func (h *DetailsHandler[P, D]) CreateDetails(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.Register(r.Context(), req.ToDomain()); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewStatusResponse(http.StatusCreated, fmt.Sprintf("%s created successfully", h.kind.DisplayName())))
}

// FetchDetails returns the customer together with their product.
//
// @Summary Fetch customer and product details
// @Description Looks the customer up by mobile number and returns them with their product. The product object has the account, card or loan shape depending on the service.
// @Tags Details
// @Produce json
// @Param mobileNumber query string true "10 digit mobile number"
// @Success 200 {object} dto.CustomerDetailsResponse[dto.AccountDto] "Customer and product details"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Customer or product not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/fetch [get]
func (h *DetailsHandler[P, D]) FetchDetails(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if err := h.validator.MobileNumber(mobileNumber); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	view, err := h.service.Lookup(r.Context(), mobileNumber)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerDetailsResponse(view, h.mapper))
}

// UpdateDetails overwrites the product located by its number and, optionally, its owner.
//
// @Summary Update product details
// @Description Updates the product identified by its number. Customer fields are optional and only non-empty ones are applied to the owning customer.
// @Tags Details
// @Accept json
// @Produce json
// @Param request body dto.UpdateDetailsRequest[dto.AccountDto] true "Product details and optional customer changes"
// @Success 200 {object} dto.StatusResponse "Request processed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 417 {object} dto.StatusResponse "Payload carried no product"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/update [put]
func (h *DetailsHandler[P, D]) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDetailsRequest[D]
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	update, err := dto.ToUpdateRequest(req, h.mapper)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), update)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if !updated {
		respondJSON(w, http.StatusExpectationFailed, dto.NewStatusResponse(http.StatusExpectationFailed, MessageUpdateFailed))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewStatusResponse(http.StatusOK, MessageOK))
}

// DeleteDetails removes the customer and their product.
//
// @Summary Delete customer and product
// @Description Deletes the product owned by the customer with the given mobile number, then the customer.
// @Tags Details
// @Produce json
// @Param mobileNumber query string true "10 digit mobile number"
// @Success 200 {object} dto.StatusResponse "Request processed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 417 {object} dto.StatusResponse "Delete operation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/delete [delete]
func (h *DetailsHandler[P, D]) DeleteDetails(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if err := h.validator.MobileNumber(mobileNumber); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	deleted, err := h.service.Deregister(r.Context(), mobileNumber)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if !deleted {
		respondJSON(w, http.StatusExpectationFailed, dto.NewStatusResponse(http.StatusExpectationFailed, MessageDeleteFailed))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewStatusResponse(http.StatusOK, MessageOK))
}
