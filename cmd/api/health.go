package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Catalog   CatalogHealth     `json:"catalog"`
}

type CatalogHealth struct {
	Items    int  `json:"items"`
	Fallback bool `json:"fallback"`
}

type closedChecker interface {
	IsClosed() bool
}

// healthcheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Reports record store, broker and session cache status
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{}

	// check db
	if app.storage != nil {
		services["database"] = "ok"
		if err := app.storage.Ping(r.Context()); err != nil {
			services["database"] = "error"
		}
	}

	// check broker
	services["queue"] = "ok"
	if c, ok := app.broker.(closedChecker); ok && c.IsClosed() {
		services["queue"] = "error"
	}

	// check sessions
	if app.sessionCache != nil {
		services["sessions"] = "ok"
		if err := app.sessionCache.Ping(r.Context()); err != nil {
			services["sessions"] = "error"
		}
	}

	stats := app.catalogService.Stats()
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  services,
		Catalog:   CatalogHealth{Items: stats.TotalItems, Fallback: stats.Fallback},
	}

	// if any service is down, mark as unhealthy
	for _, status := range services {
		if status != "ok" {
			response.Status = "unhealthy"
			if err := writeJson(w, http.StatusServiceUnavailable, response); err != nil {
				app.internalServerError(w, r, err)
			}
			return
		}
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
