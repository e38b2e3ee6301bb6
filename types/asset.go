package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol names a token and its decimal precision. The core token of a
// blockberry chain is 4,BERRY.
type Symbol struct {
	Precision uint8  `cramberry:"1"`
	Code      string `cramberry:"2"`
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// Asset is a token quantity: an integer amount scaled by the symbol's
// precision. In JSON it travels as a string like "1.0000 BERRY".
type Asset struct {
	Amount int64  `cramberry:"1"`
	Symbol Symbol `cramberry:"2"`
}

// String renders the amount with exactly Precision decimal places
// followed by the symbol code. The sign is split off the formatted
// value rather than the amount; negating the amount would overflow at
// the minimum int64.
func (a Asset) String() string {
	digits := strconv.FormatInt(a.Amount, 10)
	sign := ""
	if digits[0] == '-' {
		sign = "-"
		digits = digits[1:]
	}
	p := int(a.Symbol.Precision)
	if p == 0 {
		return fmt.Sprintf("%s%s %s", sign, digits, a.Symbol.Code)
	}
	for len(digits) <= p {
		digits = "0" + digits
	}
	cut := len(digits) - p
	return fmt.Sprintf("%s%s.%s %s", sign, digits[:cut], digits[cut:], a.Symbol.Code)
}

// ParseAsset parses the node's string form. The precision is taken
// from the number of decimal places written, so "1.0000 BERRY" and
// "1.00 BERRY" are different symbols.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Asset{}, fmt.Errorf("asset %q must be \"<amount> <symbol>\"", s)
	}
	numeric, code := parts[0], parts[1]

	precision := 0
	if dot := strings.IndexByte(numeric, '.'); dot >= 0 {
		precision = len(numeric) - dot - 1
		if precision == 0 {
			return Asset{}, fmt.Errorf("asset %q has a trailing decimal point", s)
		}
		numeric = numeric[:dot] + numeric[dot+1:]
	}
	if precision > 18 {
		return Asset{}, fmt.Errorf("asset %q precision exceeds 18", s)
	}

	amount, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("asset %q: %v", s, err)
	}

	return Asset{
		Amount: amount,
		Symbol: Symbol{Precision: uint8(precision), Code: code},
	}, nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("asset must be a JSON string, got %s", data)
	}
	parsed, err := ParseAsset(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
