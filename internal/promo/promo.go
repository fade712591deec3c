package promo

import (
	"fmt"
	"strings"
)

type Status struct {
	Valid    bool   `json:"valid"`
	Discount int    `json:"discount"`
	Message  string `json:"message"`
}

type Validator struct {
	codes map[string]int
}

// NewValidator copies codes, keyed case-insensitively.
func NewValidator(codes map[string]int) *Validator {
	m := make(map[string]int, len(codes))
	for k, v := range codes {
		m[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return &Validator{codes: m}
}

func (v *Validator) Validate(code string) Status {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Status{}
	}
	pct, ok := v.codes[code]
	if !ok {
		return Status{Message: "Invalid promo code"}
	}
	return Status{
		Valid:    true,
		Discount: pct,
		Message:  fmt.Sprintf("Promo code applied! %d%% discount", pct),
	}
}

// Discount is the percentage for code, 0 when it is empty or unknown.
func (v *Validator) Discount(code string) int {
	return v.Validate(code).Discount
}
