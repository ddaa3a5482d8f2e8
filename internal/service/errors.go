package service

import "errors"

// ValidationError marca entradas inválidas del cliente; el handler la
// traduce a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// No hay canastas reales ni respaldo por tags: no se puede entrenar.
var ErrNoTrainingData = errors.New("no hay datos para entrenar")
