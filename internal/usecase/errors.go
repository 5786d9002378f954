package usecase

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}

// RelayError indica falha no envio via Graph API. Quem chama decide o que
// fazer — o registro local da mensagem já foi gravado de qualquer forma.
type RelayError struct {
	Detail string
}

func (e *RelayError) Error() string {
	return e.Detail
}
