package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/litescript/ls-natal/internal/natal"
)

// Reading is one generated chart interpretation.
type Reading struct {
	ID        string
	Subject   natal.Subject
	Markdown  string
	Model     string
	CreatedAt time.Time
	Elapsed   time.Duration
}

// Generator produces readings for computed charts.
type Generator struct {
	client Client
	model  string
	log    *zap.Logger
}

// NewGenerator wires a completion client to the reading pipeline. The model
// name is recorded on each reading for display; pass whatever the client
// actually runs.
func NewGenerator(client Client, model string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, model: model, log: log}
}

// Generate requests one reading for the subject's chart.
func (g *Generator) Generate(ctx context.Context, subject natal.Subject, positions []natal.BodyPosition, aspects []natal.AspectHit) (Reading, error) {
	start := time.Now()
	prompt := BuildPrompt(subject, positions, aspects)

	g.log.Info("generating reading",
		zap.String("subject", subject.Name),
		zap.Int("valid_positions", natal.ValidCount(positions)),
		zap.Int("aspects", len(aspects)))

	markdown, err := g.client.CompleteWithSystem(ctx, readingSystemPrompt, prompt)
	if err != nil {
		return Reading{}, fmt.Errorf("reading generation failed: %w", err)
	}

	r := Reading{
		ID:        uuid.NewString(),
		Subject:   subject,
		Markdown:  markdown,
		Model:     g.model,
		CreatedAt: time.Now(),
		Elapsed:   time.Since(start),
	}

	g.log.Info("reading complete",
		zap.String("id", r.ID),
		zap.Duration("elapsed", r.Elapsed),
		zap.Int("markdown_len", len(r.Markdown)))

	return r, nil
}
