package otel

import (
	"context"
	"iter"

	"github.com/tzuratlink/pagelink/pkg/tagging"

	"go.opentelemetry.io/otel"
)

type Session interface {
	Observable
	tagging.Service
}

type observableSession struct {
	name string

	provider tagging.Service
}

func NewSession(name string, p tagging.Service) Session {
	return &observableSession{
		name: name,

		provider: p,
	}
}

func (p *observableSession) otelSetup() {
}

func (p *observableSession) Start(ctx context.Context, input tagging.StartRequest) (*tagging.RunResult, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "session-start "+p.name)
	defer span.End()

	return p.provider.Start(ctx, input)
}

func (p *observableSession) StartStream(ctx context.Context, input tagging.StartRequest) iter.Seq2[*tagging.StageEvent, error] {
	return func(yield func(*tagging.StageEvent, error) bool) {
		ctx, span := otel.Tracer(instrumentationName).Start(ctx, "session-stream "+p.name)
		defer span.End()

		for event, err := range p.provider.StartStream(ctx, input) {
			if !yield(event, err) {
				return
			}
		}
	}
}

func (p *observableSession) Get(ctx context.Context, sessionID string) (*tagging.SessionDocument, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "session-get "+p.name)
	defer span.End()

	return p.provider.Get(ctx, sessionID)
}

func (p *observableSession) ApplyFixes(ctx context.Context, sessionID string, fixes tagging.Fixes) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "session-apply-fixes "+p.name)
	defer span.End()

	return p.provider.ApplyFixes(ctx, sessionID, fixes)
}

func (p *observableSession) Finalize(ctx context.Context, sessionID string) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "session-finalize "+p.name)
	defer span.End()

	return p.provider.Finalize(ctx, sessionID)
}
