package domain

import "errors"

var (
	// ErrInsufficientCurrency - у игрока не хватает яиц на сделку. Состояние не меняется.
	ErrInsufficientCurrency = errors.New("insufficient currency")
	// ErrGenerationDegenerate - лабиринт таких размеров построить нельзя.
	ErrGenerationDegenerate = errors.New("maze dimensions too small")
	// ErrPersistenceUnavailable - хранилище рекордов недоступно.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
