package domain

import "errors"

var (
	ErrNotFound          = errors.New("no encontrado")
	ErrQuoteLocked       = errors.New("la cotización no está en edición")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrGroupInUse        = errors.New("el grupo de cliente todavía está referenciado")
	ErrGroupRequired     = errors.New("la cotización requiere un grupo de cliente")
)
