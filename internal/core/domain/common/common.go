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

// OptionalFromPointer treats nil as an absent value.
func OptionalFromPointer[T any](value *T) Optional[T] {
	if value == nil {
		return Optional[T]{}
	}
	return Optional[T]{Value: *value, IsPresent: true}
}

func (p Optional[T]) Pointer() *T {
	if !p.IsPresent {
		return nil
	}
	value := p.Value
	return &value
}

type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}

type PhoneNumber string

func NewPhoneNumber(rawPhone string) PhoneNumber {
	return PhoneNumber(strings.TrimSpace(rawPhone))
}
