package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p TradePayload) Validate() error {
	switch p.Mode {
	case "gamble", "safe":
		return nil
	}
	return fmt.Errorf("unknown trade mode %q", p.Mode)
}

func (p ChoicePayload) Validate() error {
	if p.Index < 0 || (p.Count > 0 && p.Index >= p.Count) {
		return fmt.Errorf("choice %d out of range", p.Index)
	}
	return nil
}
