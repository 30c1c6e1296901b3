package terms

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"payopti/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Completer is the external text-analysis surface the assisted path
// delegates to.
type Completer interface {
	ParseTerms(ctx context.Context, raw string) (domain.PaymentTerms, error)
}

// Interpreter resolves raw payment-terms text. When a completer is
// configured it is tried first under a bounded timeout; any failure falls
// through to the deterministic parser. Failures are never propagated.
type Interpreter struct {
	completer Completer
	timeout   time.Duration
	log       logrus.FieldLogger
}

// New builds an interpreter. A nil completer yields a purely deterministic
// interpreter.
func New(completer Completer, log logrus.FieldLogger) *Interpreter {
	return &Interpreter{completer: completer, timeout: defaultTimeout, log: log}
}

func (i *Interpreter) Interpret(ctx context.Context, raw string) domain.PaymentTerms {
	if i.completer != nil {
		ctx, cancel := context.WithTimeout(ctx, i.timeout)
		defer cancel()
		parsed, err := i.completer.ParseTerms(ctx, raw)
		if err == nil {
			return parsed
		}
		i.log.WithError(err).WithField("terms", raw).Warn("assisted terms parse failed, using fallback")
	}
	return ParseFallback(raw)
}
