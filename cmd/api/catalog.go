package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/konigunited/restdelbot/internal/domain"
)

// catalogStatsHandler godoc
//
//	@Summary		Catalog statistics
//	@Description	Item and category counts of the published catalog
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	domain.CatalogStats
//	@Router			/catalog/stats [get]
func (app *application) catalogStatsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonRespone(w, http.StatusOK, app.catalogService.Stats()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// catalogSearchHandler godoc
//
//	@Summary		Search the catalog
//	@Description	Case-insensitive substring search over name, description and code
//	@Tags			catalog
//	@Produce		json
//	@Param			q	query		string	true	"Search text"
//	@Success		200	{array}		domain.CatalogEntry
//	@Failure		400	{object}	map[string]string
//	@Router			/catalog/search [get]
func (app *application) catalogSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		app.badRequestResponse(w, r, errors.New("query parameter q is required"))
		return
	}

	results := app.catalogService.Search(query)
	if results == nil {
		results = []domain.CatalogEntry{}
	}

	if err := app.jsonRespone(w, http.StatusOK, results); err != nil {
		app.internalServerError(w, r, err)
	}
}

// catalogItemHandler godoc
//
//	@Summary		Get catalog entry by id
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		int	true	"Entry ID"
//	@Success		200	{object}	domain.CatalogEntry
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/catalog/items/{id} [get]
func (app *application) catalogItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	entry, err := app.catalogService.Entry(id)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}

// catalogCodeHandler godoc
//
//	@Summary		Get catalog entry by code
//	@Tags			catalog
//	@Produce		json
//	@Param			code	path		string	true	"Entry code"
//	@Success		200		{object}	domain.CatalogEntry
//	@Failure		404		{object}	map[string]string
//	@Router			/catalog/codes/{code} [get]
func (app *application) catalogCodeHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := app.catalogService.EntryByCode(chi.URLParam(r, "code"))
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}
