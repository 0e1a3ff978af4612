package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateReloadTaskRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"omitempty,max=128"`
}

// createReloadTaskHandler godoc
//
//	@Summary		Reload the catalog
//	@Description	Queues a catalog reload from the configured source or from a Google spreadsheet
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateReloadTaskRequest	false	"Reload request"
//	@Success		202		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/catalog/reload [post]
func (app *application) createReloadTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateReloadTaskRequest
	if err := readJson(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	taskID, err := app.catalogService.CreateReloadTask(r.Context(), req.SpreadsheetID)
	if err != nil {
		if errors.Is(err, service.ErrSheetsNotConfigured) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"task_id": taskID.Hex(),
		"status":  string(domain.StatusQueued),
	}

	if err := app.jsonRespone(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getReloadTaskHandler godoc
//
//	@Summary		Get reload task status
//	@Tags			catalog
//	@Produce		json
//	@Param			task_id	path		string	true	"Task ID"
//	@Success		200		{object}	domain.CatalogReloadTask
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/catalog/reload/{task_id} [get]
func (app *application) getReloadTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskIDStr := chi.URLParam(r, "task_id")
	if taskIDStr == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	taskID, err := primitive.ObjectIDFromHex(taskIDStr)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	task, err := app.catalogService.GetTask(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
