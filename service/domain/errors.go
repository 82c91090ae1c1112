package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifica uma falha pela responsabilidade: cliente ou servidor.
type ErrorKind int

const (
	// KindBadRequest indica entrada inválida enviada pelo chamador.
	KindBadRequest ErrorKind = iota
	// KindInternal indica falha do lado do servidor, sem relação com a entrada.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error é o envelope de erro do domínio. É criado no ponto da falha e
// consumido uma única vez quando renderizado.
//
// A tradução para status HTTP fica no pacote service; aqui não há nada de HTTP.
type Error struct {
	Kind    ErrorKind
	Message string
	// Err é a causa opcional (ex.: strconv.NumError), não exposta ao cliente.
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest cria um erro de entrada inválida.
func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Internal cria um erro de servidor.
func Internal(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal cria um erro de servidor preservando a causa.
func WrapInternal(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf devolve a classificação do erro.
// Erros que não são *Error contam como KindInternal: o que não foi classificado
// no ponto da falha não é culpa do cliente.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsBadRequest(err error) bool { return err != nil && KindOf(err) == KindBadRequest }

func IsInternal(err error) bool { return err != nil && KindOf(err) == KindInternal }
