// Package transfer submits the solana-transfers program's instructions on
// behalf of a single signer.
package transfer

import (
	"context"
	"crypto/ed25519"
	"math"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/solana-transfers/pkg/cache"
	"github.com/code-payments/solana-transfers/pkg/metrics"
	"github.com/code-payments/solana-transfers/pkg/retry"
	"github.com/code-payments/solana-transfers/pkg/retry/backoff"
	"github.com/code-payments/solana-transfers/pkg/solana"
	"github.com/code-payments/solana-transfers/pkg/solana/computebudget"
	"github.com/code-payments/solana-transfers/pkg/solana/transfers"
)

const (
	metricsStructName = "transfer.service"

	transferSubmittedEventName    = "TransferSubmitted"
	transferFailedEventName       = "TransferFailed"
	confirmationLatencyMetricName = "Transfer/ConfirmationLatency"
	instructionCountMetricName    = "Transfer/InstructionCount"

	tokenCacheBudget = 1024
)

var (
	ErrZeroAmount          = errors.New("amount must be positive")
	ErrAmountExceedsLimit  = errors.New("amount exceeds the configured transfer limit")
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmation")

	errNotConfirmed = errors.New("transaction not yet confirmed")
)

// Service builds, signs and submits program instructions with a single
// signer that also pays fees.
type Service struct {
	log        *logrus.Entry
	conf       *conf
	sc         solana.Client
	env        solana.Environment
	signer     ed25519.PrivateKey
	commitment solana.Commitment

	tokens cache.Cache[*Token]
}

func New(sc solana.Client, env solana.Environment, signer ed25519.PrivateKey, commitment solana.Commitment, configProvider ConfigProvider) *Service {
	return &Service{
		log:        logrus.StandardLogger().WithField("service", "transfer"),
		conf:       configProvider(),
		sc:         sc,
		env:        env,
		signer:     signer,
		commitment: commitment,
		tokens:     cache.NewCache[*Token](tokenCacheBudget),
	}
}

// Signer is the public key that signs and pays for every transaction.
func (s *Service) Signer() ed25519.PublicKey {
	return s.signer.Public().(ed25519.PublicKey)
}

// submit compiles the instructions into a v0 transaction, signs it and sends
// it to the cluster. The last instruction is the program instruction being
// tracked; any before it are setup. Configured compute budget instructions
// are prepended.
func (s *Service) submit(ctx context.Context, methodName string, amount uint64, instructions ...solana.Instruction) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, methodName)
	defer tracer.End()

	log := s.log.WithContext(ctx).WithFields(logrus.Fields{
		"method": methodName,
		"signer": base58.Encode(s.Signer()),
		"amount": amount,
	})

	sig, err := func() (solana.Signature, error) {
		if amount == 0 {
			return solana.Signature{}, ErrZeroAmount
		}
		if limit := s.conf.maxTransferAmount.Get(ctx); limit > 0 && amount > limit {
			return solana.Signature{}, errors.Wrapf(ErrAmountExceedsLimit, "%d > %d", amount, limit)
		}

		bh, err := s.sc.GetLatestBlockhash()
		if err != nil {
			return solana.Signature{}, errors.Wrap(err, "error getting latest blockhash")
		}

		budget, err := s.getComputeBudgetInstructions(ctx)
		if err != nil {
			return solana.Signature{}, err
		}

		txn := solana.NewVersionedTransaction(s.Signer(), append(budget, instructions...)...)
		txn.SetBlockhash(bh)

		if err := txn.Sign(s.signer); err != nil {
			return solana.Signature{}, errors.Wrap(err, "error signing transaction")
		}
		if err := txn.Validate(); err != nil {
			return txn.Signature(), errors.Wrap(err, "invalid transaction")
		}

		log.Tracef("submitting transaction:\n%s", txn.String())

		sig, err := s.sc.SubmitTransaction(txn, s.commitment)
		if err != nil {
			return txn.Signature(), err
		}
		return sig, nil
	}()

	if err != nil {
		tracer.OnError(err)
		s.logSubmitError(log, err)
		metrics.RecordEvent(ctx, transferFailedEventName, map[string]interface{}{
			"method": methodName,
			"amount": amount,
			"error":  err.Error(),
		})
		return sig, err
	}

	tracer.AddAttributes(map[string]interface{}{
		"signature":    sig.String(),
		"instructions": len(instructions),
	})
	metrics.RecordCount(ctx, instructionCountMetricName, uint64(len(instructions)))
	metrics.RecordEvent(ctx, transferSubmittedEventName, map[string]interface{}{
		"method":    methodName,
		"amount":    amount,
		"signature": sig.String(),
	})

	log.WithFields(logrus.Fields{
		"signature": sig.String(),
		"explorer":  solana.ExplorerURL(sig, s.env),
	}).Info("transaction submitted")

	return sig, nil
}

func (s *Service) getComputeBudgetInstructions(ctx context.Context) ([]solana.Instruction, error) {
	var instructions []solana.Instruction

	if limit := s.conf.computeUnitLimit.Get(ctx); limit > 0 {
		if limit > math.MaxUint32 {
			return nil, errors.Errorf("compute unit limit %d exceeds u32", limit)
		}
		instructions = append(instructions, computebudget.SetComputeUnitLimit(uint32(limit)))
	}

	if price := s.conf.computeUnitPrice.Get(ctx); price > 0 {
		instructions = append(instructions, computebudget.SetComputeUnitPrice(price))
	}

	return instructions, nil
}

func (s *Service) logSubmitError(log *logrus.Entry, err error) {
	if anchorErr, ok := transfers.GetAnchorError(err); ok {
		log = log.WithField("anchor_error", anchorErr.Error())
	}

	var txErr *solana.TransactionError
	if errors.As(err, &txErr) {
		for _, line := range txErr.Logs() {
			log.Debug(line)
		}
	}

	log.WithError(err).Warn("failed to submit transaction")
}

// WaitForConfirmation polls the signature's status until it reaches the
// service's commitment level. A transaction that landed with an error returns
// its status alongside the *solana.TransactionError.
func (s *Service) WaitForConfirmation(ctx context.Context, sig solana.Signature) (*solana.SignatureStatus, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "WaitForConfirmation")
	defer tracer.End()

	log := s.log.WithContext(ctx).WithFields(logrus.Fields{
		"method":     "WaitForConfirmation",
		"signature":  sig.String(),
		"commitment": s.commitment.Commitment,
	})

	timeout := s.conf.confirmationTimeout.Get(ctx)
	pollInterval := s.conf.confirmationPollInterval.Get(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	var status *solana.SignatureStatus
	_, err := retry.RetryWithContext(
		ctx,
		func() error {
			statuses, err := s.sc.GetSignatureStatuses([]solana.Signature{sig})
			if err != nil {
				return err
			}

			if statuses[0] == nil {
				return solana.ErrSignatureNotFound
			}

			status = statuses[0]
			if status.ErrorResult == nil && !status.Satisfies(s.commitment) {
				return errNotConfirmed
			}
			return nil
		},
		retry.RetriableErrors(solana.ErrSignatureNotFound, errNotConfirmed),
		retry.Backoff(backoff.Constant(pollInterval), pollInterval),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		err = errors.Wrapf(ErrConfirmationTimeout, "after %s", timeout)
	}
	if err != nil {
		tracer.OnError(err)
		log.WithError(err).Warn("failed to confirm transaction")
		return status, err
	}

	metrics.RecordDuration(ctx, confirmationLatencyMetricName, time.Since(start))

	if status.ErrorResult != nil {
		tracer.OnError(status.ErrorResult)
		log.WithError(status.ErrorResult).Warn("transaction failed")
		return status, status.ErrorResult
	}

	log.WithField("slot", status.Slot).Info("transaction confirmed")
	return status, nil
}
