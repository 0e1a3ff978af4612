package main

import (
	"net/http"
	"strings"
)

type ChatRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,max=128"`
	Text           string `json:"text" validate:"required,max=4000"`
}

// chatHandler godoc
//
//	@Summary		Send a chat message
//	@Description	Processes one conversation turn and returns the assistant reply
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChatRequest	true	"Chat message"
//	@Success		200		{object}	service.Reply
//	@Failure		400		{object}	map[string]string
//	@Failure		429		{object}	map[string]string
//	@Router			/chat [post]
func (app *application) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reply := app.assistant.HandleMessage(r.Context(), req.ConversationID, req.Text)

	if err := app.jsonRespone(w, http.StatusOK, reply); err != nil {
		app.internalServerError(w, r, err)
	}
}
