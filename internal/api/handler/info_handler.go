package handler

import (
	"net/http"
	"runtime"

	"bank-records/internal/api/handler/dto"
	"bank-records/internal/config"
)

type InfoHandler struct {
	buildVersion string
	contact      dto.ContactInfoResponse
}

func NewInfoHandler(service config.ServiceConfig, contact config.ContactConfig) *InfoHandler {
	return &InfoHandler{
		buildVersion: service.BuildVersion,
		contact: dto.ContactInfoResponse{
			Message:        contact.Message,
			ContactDetails: contact.ContactDetails,
			OnCallSupport:  contact.OnCallSupport,
		},
	}
}

// BuildInfo returns the configured build version.
//
// @Summary Get build information
// @Tags Info
// @Produce json
// @Success 200 {string} string "Build version"
// @Router /api/build-info [get]
func (h *InfoHandler) BuildInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.buildVersion)
}

// RuntimeVersion returns the Go version the service was built with.
//
// @Summary Get runtime version
// @Tags Info
// @Produce json
// @Success 200 {string} string "Go runtime version"
// @Router /api/runtime-version [get]
func (h *InfoHandler) RuntimeVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, runtime.Version())
}

// ContactInfo returns who to reach about this service.
//
// @Summary Get contact information
// @Tags Info
// @Produce json
// @Success 200 {object} dto.ContactInfoResponse "Contact details"
// @Router /api/contact-info [get]
func (h *InfoHandler) ContactInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contact)
}
