package main

import (
	"net/http"

	"github.com/gorilla/websocket"

	"GridironStatsApi/internal/analysis"
	"GridironStatsApi/internal/validator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type watchMessage struct {
	Event    string             `json:"event"`
	Progress *analysis.Progress `json:"progress,omitempty"`
	Analysis *analysis.Result   `json:"analysis,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// WatchAnalysis runs the same pipeline as GetAnalysis over a websocket,
// streaming every state transition before the final result. Progress
// writes happen inline from the pipeline, so the socket sees states in
// the order the request moved through them.
func (app *application) WatchAnalysis(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	req := app.parseAnalysisRequest(r, v)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}
	defer conn.Close()

	writeErr := func(err error) {
		if err != nil {
			app.logError(r, err)
		}
	}

	result, err := app.orchestrator.Analyze(r.Context(), req, func(p analysis.Progress) {
		writeErr(conn.WriteJSON(watchMessage{Event: "progress", Progress: &p}))
	})
	if err != nil {
		writeErr(conn.WriteJSON(watchMessage{Event: "error", Error: err.Error()}))
		writeErr(conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "")))
		return
	}

	writeErr(conn.WriteJSON(watchMessage{Event: "result", Analysis: result}))
	writeErr(conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}
