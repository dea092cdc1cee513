package httpapi

import (
	"encoding/json"
	"net/http"

	"jaayma/validate"
)

// Envelope is the uniform JSON body for every response. Denials and
// validation failures always set Success=false and Message; the optional
// fields only appear on password-validation responses.
type Envelope struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Data     any      `json:"data,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Strength string   `json:"strength,omitempty"`
	Score    *int     `json:"score,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a denial envelope with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// FailValidation writes a 400 envelope carrying per-rule error messages.
func FailValidation(w http.ResponseWriter, message string, errs []string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message, Errors: errs})
}

// FailAssessment writes a 400 envelope carrying the full password assessment.
func FailAssessment(w http.ResponseWriter, message string, a validate.PasswordAssessment) {
	score := a.Score
	writeJSON(w, http.StatusBadRequest, Envelope{
		Success:  false,
		Message:  message,
		Errors:   a.Errors,
		Warnings: a.Warnings,
		Strength: a.Strength,
		Score:    &score,
	})
}
