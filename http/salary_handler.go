package http

import (
	"net/http"

	"income-tax/domain"
	"income-tax/service"
)

type SalaryHandler struct {
	service *service.SalaryService
}

func NewSalaryHandler(service *service.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

func (h *SalaryHandler) Statement(w http.ResponseWriter, r *http.Request) {
	var input domain.SalaryInput
	if !decodeJSON(w, r, &input) {
		return
	}

	statement, err := h.service.Statement(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statement)
}
