package limiter

import (
	"context"
	"iter"

	"github.com/tzuratlink/pagelink/pkg/tagging"

	"golang.org/x/time/rate"
)

type Session interface {
	Limiter
	tagging.Service
}

type limitedSession struct {
	limiter  *rate.Limiter
	provider tagging.Service
}

func NewSession(l *rate.Limiter, p tagging.Service) Session {
	return &limitedSession{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedSession) limiterSetup() {
}

func (p *limitedSession) Start(ctx context.Context, input tagging.StartRequest) (*tagging.RunResult, error) {
	if p.limiter != nil {
		p.limiter.Wait(ctx)
	}

	return p.provider.Start(ctx, input)
}

func (p *limitedSession) StartStream(ctx context.Context, input tagging.StartRequest) iter.Seq2[*tagging.StageEvent, error] {
	return func(yield func(*tagging.StageEvent, error) bool) {
		if p.limiter != nil {
			p.limiter.Wait(ctx)
		}

		for event, err := range p.provider.StartStream(ctx, input) {
			if !yield(event, err) {
				return
			}
		}
	}
}

func (p *limitedSession) Get(ctx context.Context, sessionID string) (*tagging.SessionDocument, error) {
	if p.limiter != nil {
		p.limiter.Wait(ctx)
	}

	return p.provider.Get(ctx, sessionID)
}

func (p *limitedSession) ApplyFixes(ctx context.Context, sessionID string, fixes tagging.Fixes) error {
	if p.limiter != nil {
		p.limiter.Wait(ctx)
	}

	return p.provider.ApplyFixes(ctx, sessionID, fixes)
}

func (p *limitedSession) Finalize(ctx context.Context, sessionID string) (string, error) {
	if p.limiter != nil {
		p.limiter.Wait(ctx)
	}

	return p.provider.Finalize(ctx, sessionID)
}
