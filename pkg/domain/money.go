package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	dErrors "govinda/pkg/domain-errors"
)

// Money is an immutable amount in a currency with at most two fractional digits.
// Every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

const moneyScale = 2

var (
	twenty = decimal.NewFromInt(20)

	// ZeroCHF is CHF 0.00.
	ZeroCHF = Money{amount: decimal.Zero, currency: CurrencyCHF}
)

// NewMoney validates the scale and currency of an amount.
// Errors: CodeValidation when the amount has more than two fractional digits.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, dErrors.Newf(dErrors.CodeValidation, "unsupported currency: %s", currency)
	}
	if amount.Exponent() < -moneyScale {
		return Money{}, dErrors.Newf(dErrors.CodeValidation,
			"money amount must have at most %d decimal places: %s", moneyScale, amount)
	}
	return Money{amount: amount, currency: currency}, nil
}

// ParseMoney parses a decimal string such as "10.05".
func ParseMoney(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid money amount")
	}
	return NewMoney(d, currency)
}

// CHF builds a Swiss franc amount from a decimal string, rounded half-up to two
// places. It panics on unparsable input and is meant for constants and tests.
func CHF(amount string) Money {
	return Money{amount: decimal.RequireFromString(amount).Round(moneyScale), currency: CurrencyCHF}
}

// CHFFromInt builds a whole-franc amount.
func CHFFromInt(francs int64) Money {
	return Money{amount: decimal.NewFromInt(francs), currency: CurrencyCHF}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }

// RoundToRappen rounds to the nearest 0.05, ties away from zero: round(x*20)/20.
func (m Money) RoundToRappen() Money {
	rounded := m.amount.Mul(twenty).Round(0).DivRound(twenty, moneyScale)
	return Money{amount: rounded, currency: m.currency}
}

// Add returns m + other.
// Errors: CodeValidation when currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other.
// Errors: CodeValidation when currencies differ.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply returns m * factor.
func (m Money) Multiply(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor)), currency: m.currency}
}

// MultiplyDecimal returns m * factor rounded half-up to two places.
func (m Money) MultiplyDecimal(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(moneyScale), currency: m.currency}
}

func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// Compare returns -1, 0 or 1.
// Errors: CodeValidation when currencies differ.
func (m Money) Compare(other Money) (int, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) IsZero() bool     { return m.amount.IsZero() }

// Equal reports whether both currency and amount match.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders e.g. "CHF 10.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(moneyScale))
}

func (m Money) requireSameCurrency(other Money) error {
	if m.currency != other.currency {
		return dErrors.Newf(dErrors.CodeValidation,
			"cannot combine different currencies: %s and %s", m.currency, other.currency)
	}
	return nil
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.StringFixed(moneyScale), Currency: m.currency})
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
