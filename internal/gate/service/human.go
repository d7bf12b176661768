package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/downloadgate/pkg/captcha"
	"github.com/aussiebroadwan/downloadgate/pkg/slogx"
)

var (
	ErrMissingProof         = errors.New("missing captcha token")
	ErrCaptchaNotConfigured = errors.New("captcha secret not configured")
	ErrHumanCheckFailed     = errors.New("captcha verification failed")
)

// Verifier checks a captcha response against the provider.
// *captcha.Client implements it.
type Verifier interface {
	Verify(ctx context.Context, secret, response, remoteIP string) (bool, error)
}

// Result is the outcome of a successful human check.
type Result struct {
	Passed   bool
	Bypassed bool
}

// HumanGateway decides whether a request comes from a human. With Bypass
// set every request passes and the provider is never contacted.
type HumanGateway struct {
	Verifier Verifier
	Secret   string
	Bypass   bool
}

// VerifyHuman checks proof with the provider. The client address is not
// forwarded.
func (g *HumanGateway) VerifyHuman(ctx context.Context, proof string) (Result, error) {
	log := slogx.FromContext(ctx)

	if g.Bypass {
		log.Warn("captcha bypass enabled, skipping verification")
		return Result{Passed: true, Bypassed: true}, nil
	}

	if proof == "" {
		return Result{}, ErrMissingProof
	}

	if g.Secret == "" {
		log.Error("captcha secret not configured")
		return Result{}, ErrCaptchaNotConfigured
	}

	ok, err := g.Verifier.Verify(ctx, g.Secret, proof, "")
	if err != nil {
		log.Error("captcha provider call failed", slog.Any("error", err))
		if errors.Is(err, captcha.ErrUpstream) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", captcha.ErrUpstream, err)
	}
	if !ok {
		log.Info("captcha verification rejected")
		return Result{}, ErrHumanCheckFailed
	}

	return Result{Passed: true}, nil
}
