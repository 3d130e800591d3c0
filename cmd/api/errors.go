package main

import (
	"errors"
	"fmt"
	"net/http"

	"GridironStatsApi/internal/analysis"
)

func (app *application) logError(r *http.Request, err error) {
	app.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int,
	message any) {
	response := envelope{"error": message}

	err := app.writeJSON(w, status, response, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) methodNotAllowedRequest(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request,
	errors map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	app.errorResponse(w, r, http.StatusTooManyRequests, message)
}

// analysisErrorResponse maps pipeline failure kinds onto HTTP statuses.
func (app *application) analysisErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var analysisErr *analysis.Error
	if !errors.As(err, &analysisErr) {
		app.serverErrorResponse(w, r, err)
		return
	}

	switch analysisErr.Kind {
	case analysis.KindValidation:
		if len(analysisErr.Fields) > 0 {
			app.failedValidationResponse(w, r, analysisErr.Fields)
			return
		}
		app.errorResponse(w, r, http.StatusUnprocessableEntity, analysisErr.Message)
	case analysis.KindDataUnavailable:
		app.errorResponse(w, r, http.StatusNotFound, analysisErr.Message)
	case analysis.KindCacheConsistency:
		app.logError(r, err)
		app.errorResponse(w, r, http.StatusServiceUnavailable, analysisErr.Message)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
