package retry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Policy define tentativas limitadas com backoff exponencial e timeout por tentativa
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	AttemptTimeout  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		AttemptTimeout:  5 * time.Second,
	}
}

// Permanent marca um erro que não deve ser repetido
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do executa op até obter sucesso, esgotar as tentativas ou receber um erro permanente
func (p Policy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = p.InitialInterval
	expBackoff.MaxInterval = p.MaxInterval
	expBackoff.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(attempts-1)), ctx)

	attempt := 0
	operation := func() error {
		attempt++

		attemptCtx := ctx
		if p.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
			defer cancel()
		}

		err := op(attemptCtx)
		if err == nil {
			return nil
		}

		if isPermanent(ctx, err) {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{
			"operation": name,
			"attempt":   attempt,
			"wait":      wait.String(),
		}).WithError(err).Warn("Falha na operação, tentando novamente")
	}

	return backoff.RetryNotify(operation, b, notify)
}

func isPermanent(ctx context.Context, err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}

	// Cancelamento do chamador não é repetido; timeout de uma única tentativa é
	if ctx.Err() != nil {
		return true
	}

	return errors.Is(err, context.Canceled)
}
