package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"compute-service/service/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

// StatusFor mapeia a classificação do erro para o status HTTP.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RenderError é o único ponto que traduz erros do domínio para resposta HTTP:
// status pelo Kind e corpo {"error": message}.
//
// Erros que não são *domain.Error viram 500 com mensagem genérica.
func RenderError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	msg := http.StatusText(http.StatusInternalServerError)
	var de *domain.Error
	if errors.As(err, &de) && de.Message != "" {
		msg = de.Message
	}
	writeJSON(w, StatusFor(kind), errorBody{Error: msg})
}
