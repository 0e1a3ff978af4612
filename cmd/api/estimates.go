package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/konigunited/restdelbot/internal/domain"
)

type EstimatesResponse struct {
	Records []domain.EstimateRecord    `json:"records"`
	Stats   domain.EstimateRecordStats `json:"stats"`
}

// listEstimatesHandler godoc
//
//	@Summary		Recent estimates
//	@Description	Most recent estimate records with totals over the whole history
//	@Tags			estimates
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum records (default 20, max 100)"
//	@Success		200		{object}	EstimatesResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/estimates [get]
func (app *application) listEstimatesHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			app.badRequestResponse(w, r, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	records, err := app.recordService.Recent(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	stats, err := app.recordService.Stats(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if records == nil {
		records = []domain.EstimateRecord{}
	}

	if err := app.jsonRespone(w, http.StatusOK, EstimatesResponse{Records: records, Stats: stats}); err != nil {
		app.internalServerError(w, r, err)
	}
}
