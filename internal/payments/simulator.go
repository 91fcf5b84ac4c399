// Package payments implements the deterministic payment simulator used at
// bind time. Every attempt is a single synchronous call with no retries and
// no external side effects.
package payments

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/internal/platform/ids"
)

// Card numbers hard-wired to deterministic declines.
const (
	cardInsufficientFunds = "4000000000000002"
	cardDoNotHonor        = "4000000000009995"
)

type Simulator struct {
	log *slog.Logger
}

func NewSimulator(log *slog.Logger) *Simulator {
	return &Simulator{log: log}
}

var _ core.PaymentProcessor = (*Simulator)(nil)

// Attempt validates and "processes" a payment. On success the result carries
// tokenized details only; the full card number and CVV never leave this
// function.
func (s *Simulator) Attempt(ctx context.Context, method core.PaymentMethod, details core.PaymentDetails, amount int64) (core.PaymentResult, error) {
	switch method {
	case core.PaymentMethodCreditCard:
		return s.attemptCard(ctx, details, amount)
	case core.PaymentMethodBankTransfer:
		return s.attemptBankTransfer(ctx, details, amount)
	default:
		return core.PaymentResult{}, core.DeclinedError("Unsupported payment method")
	}
}

func (s *Simulator) attemptCard(ctx context.Context, details core.PaymentDetails, amount int64) (core.PaymentResult, error) {
	number := stripWhitespace(details.CardNumber)

	if !luhnValid(number) {
		return core.PaymentResult{}, core.DeclinedError("Invalid card number (failed Luhn check)")
	}

	switch number {
	case cardInsufficientFunds:
		s.log.InfoContext(ctx, "simulated decline", "reason", "insufficient funds")
		return core.PaymentResult{}, core.DeclinedError("insufficient funds")
	case cardDoNotHonor:
		s.log.InfoContext(ctx, "simulated decline", "reason", "do not honor")
		return core.PaymentResult{}, core.DeclinedError("do not honor")
	}

	return core.PaymentResult{
		TransactionID: "txn_" + ids.New(),
		Method:        core.PaymentMethodCreditCard,
		Last4:         lastFour(number),
		CardBrand:     cardBrand(number),
		Amount:        amount,
	}, nil
}

func (s *Simulator) attemptBankTransfer(_ context.Context, details core.PaymentDetails, amount int64) (core.PaymentResult, error) {
	routing := stripWhitespace(details.RoutingNumber)
	account := stripWhitespace(details.AccountNumber)

	if len(routing) != 9 || !allDigits(routing) {
		return core.PaymentResult{}, core.DeclinedError("Invalid routing number")
	}
	if len(account) < 4 || !allDigits(account) {
		return core.PaymentResult{}, core.DeclinedError("Invalid account number")
	}

	return core.PaymentResult{
		TransactionID: "txn_" + ids.New(),
		Method:        core.PaymentMethodBankTransfer,
		Last4:         lastFour(account),
		AccountType:   details.AccountType,
		Amount:        amount,
	}, nil
}

// luhnValid runs the Luhn checksum: every second digit from the right is
// doubled and digit-summed; the total must be divisible by 10.
func luhnValid(number string) bool {
	if number == "" || !allDigits(number) {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// cardBrand detects the brand purely from the leading digit.
func cardBrand(number string) string {
	switch number[0] {
	case '4':
		return "Visa"
	case '5':
		return "Mastercard"
	case '3':
		return "American Express"
	case '6':
		return "Discover"
	default:
		return "Unknown"
	}
}

func lastFour(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
