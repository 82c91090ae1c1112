package application

import (
	"strings"

	"compute-service/service/domain"
)

// ValidateEcho devolve a mensagem sem alteração, ou BadRequest se ela for
// vazia depois de aparar espaços.
func ValidateEcho(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.BadRequest("message must not be empty")
	}
	return message, nil
}
