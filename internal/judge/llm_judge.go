package judge

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/config"
	"github.com/genieai/rag-eval-agent/internal/llm"
	"github.com/genieai/rag-eval-agent/internal/models"
)

const defaultMaxRetries = 2

// LLMJudge scores one dimension using an LLM with a configurable prompt.
// Malformed verdicts and transient endpoint errors are retried with
// backoff up to a small fixed bound; a valid parse on any attempt wins.
type LLMJudge struct {
	spec       config.DimensionSpec
	promptTmpl *template.Template
	llmClient  llm.Client
	maxRetries int
	backoff    time.Duration
	logger     *zerolog.Logger
}

// promptData is what the dimension prompt templates see. Answer is left
// empty for retrieval dimensions so a template mistake surfaces as an
// obviously blank section, not a leaked answer.
type promptData struct {
	Query           string
	Answer          string
	Chunks          []string
	BusinessContext string
}

func NewLLMJudge(spec config.DimensionSpec, llmClient llm.Client, logger *zerolog.Logger) (*LLMJudge, error) {
	tmpl, err := template.New(spec.Name).Parse(spec.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template for dimension %s: %w", spec.Name, err)
	}

	if spec.Model == nil {
		return nil, fmt.Errorf("dimension %s has nil model config (should be populated by config loader)", spec.Name)
	}

	return &LLMJudge{
		spec:       spec,
		promptTmpl: tmpl,
		llmClient:  llmClient,
		maxRetries: defaultMaxRetries,
		backoff:    500 * time.Millisecond,
		logger:     logger,
	}, nil
}

func (j *LLMJudge) Dimension() string {
	return j.spec.Name
}

// Score builds the judging prompt, invokes the model and parses a
// structured verdict. It fails with ErrJudgeInvocationFailed only after
// exhausting retries; no penalty is recorded for attempts that needed a
// retry.
func (j *LLMJudge) Score(ctx context.Context, turn models.Turn) (models.JudgeVerdict, error) {
	prompt, err := j.buildPrompt(turn)
	if err != nil {
		return models.JudgeVerdict{}, fmt.Errorf("%w: dimension %s: %v", ErrJudgeInvocationFailed, j.spec.Name, err)
	}

	var (
		lastRaw string
		lastErr error
	)

	for attempt := 0; attempt <= j.maxRetries; attempt++ {
		if attempt > 0 {
			if err := j.wait(ctx, attempt); err != nil {
				return models.JudgeVerdict{}, fmt.Errorf("%w: dimension %s: %v", ErrJudgeInvocationFailed, j.spec.Name, err)
			}
		}

		start := time.Now()
		resp, err := j.llmClient.InvokeModel(ctx, llm.Request{
			Prompt:      prompt,
			MaxTokens:   j.spec.Model.MaxTokens,
			Temperature: j.spec.Model.Temperature,
		})
		if err != nil {
			lastErr = err
			j.logger.Warn().
				Err(err).
				Str("dimension", j.spec.Name).
				Int("attempt", attempt+1).
				Msg("LLM call failed")

			if !llm.IsTransient(err) {
				break
			}
			continue
		}

		verdict, ok := parseVerdict(j.spec, resp.Content)
		if ok {
			j.logger.Info().
				Str("dimension", j.spec.Name).
				Float64("score", verdict.Score).
				Str("judgment", verdict.Judgment).
				Dur("duration", time.Since(start)).
				Int("attempt", attempt+1).
				Msg("judge completed")
			return verdict, nil
		}

		lastRaw = resp.Content
		lastErr = nil
		j.logger.Warn().
			Str("dimension", j.spec.Name).
			Int("attempt", attempt+1).
			Str("content", resp.Content).
			Msg("malformed judge verdict")
	}

	switch {
	case lastErr != nil && lastRaw != "":
		return models.JudgeVerdict{}, fmt.Errorf("%w: dimension %s: %v (last output: %q)", ErrJudgeInvocationFailed, j.spec.Name, lastErr, lastRaw)
	case lastErr != nil:
		return models.JudgeVerdict{}, fmt.Errorf("%w: dimension %s: %v", ErrJudgeInvocationFailed, j.spec.Name, lastErr)
	default:
		return models.JudgeVerdict{}, fmt.Errorf("%w: dimension %s: malformed output: %q", ErrJudgeInvocationFailed, j.spec.Name, lastRaw)
	}
}

func (j *LLMJudge) buildPrompt(turn models.Turn) (string, error) {
	data := promptData{
		Query:           turn.Query,
		Chunks:          turn.Chunks,
		BusinessContext: turn.BusinessContext,
	}
	if j.spec.AppliesTo == config.KindGeneration {
		data.Answer = turn.Answer
	}

	var buf bytes.Buffer
	if err := j.promptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

func (j *LLMJudge) wait(ctx context.Context, attempt int) error {
	delay := j.backoff * time.Duration(1<<uint(attempt-1))
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
