package http

import (
	"net/http"
	"strconv"

	"income-tax/domain"
	"income-tax/service"
)

type TaxHandler struct {
	service *service.TaxService
}

func NewTaxHandler(service *service.TaxService) *TaxHandler {
	return &TaxHandler{service: service}
}

type calculateResponse struct {
	domain.TaxResult
	Breakdown string `json:"breakdown"`
}

func (h *TaxHandler) CalculateTax(w http.ResponseWriter, r *http.Request) {
	var input domain.TaxInput
	if !decodeJSON(w, r, &input) {
		return
	}

	regime, err := service.ParseRegime(string(input.Regime))
	if err != nil {
		writeError(w, r, err)
		return
	}
	input.Regime = regime

	result, err := h.service.CalculateTax(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, calculateResponse{
		TaxResult: result,
		Breakdown: service.FormatBreakdown(input, result),
	})
}

type wordsRequest struct {
	Amount float64 `json:"amount"`
}

type wordsResponse struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Words     string  `json:"words"`
}

func (h *TaxHandler) AmountInWords(w http.ResponseWriter, r *http.Request) {
	var req wordsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := service.CheckAmount("amount", req.Amount); err != nil {
		writeError(w, r, err)
		return
	}
	words, err := service.AmountInWords(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, wordsResponse{
		Amount:    req.Amount,
		Formatted: service.FormatRupees(req.Amount),
		Words:     words,
	})
}

type rulesResponse struct {
	Default  string            `json:"default"`
	RuleSets []service.RuleSet `json:"rule_sets"`
}

func (h *TaxHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	book := h.service.Rules()
	resp := rulesResponse{Default: book.DefaultName()}
	for _, name := range book.Names() {
		rs, err := book.Get(name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.RuleSets = append(resp.RuleSets, rs)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *TaxHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	calcs, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, calcs)
}
