package common

import (
	"fmt"
	"strings"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

// Email uniqueness is case-sensitive, the address is stored exactly as
// provided except for surrounding whitespace.
type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.TrimSpace(rawEmail))
}
