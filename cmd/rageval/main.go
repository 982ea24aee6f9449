package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/genieai/rag-eval-agent/internal/models"
	"github.com/genieai/rag-eval-agent/internal/runner"
	"github.com/genieai/rag-eval-agent/internal/setup"
	"github.com/genieai/rag-eval-agent/internal/store"
)

const dateLayout = "2006-01-02T15:04:05"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	guest := flag.Bool("guest", false, "Evaluate guest conversations instead of registered users")
	limit := flag.Int("limit", 0, "Cap on turns to evaluate (0 = no cap)")
	noDateFilter := flag.Bool("no-date-filter", false, "Evaluate the full history instead of the trailing window")
	forceRun := flag.Bool("force-run", false, "Run even outside the scheduled day")
	startDate := flag.String("start-date", "", "Window start, layout "+dateLayout)
	endDate := flag.String("end-date", "", "Window end (exclusive), layout "+dateLayout)
	workers := flag.Int("workers", 0, "Concurrent evaluation workers (0 = configured default)")
	dryRun := flag.Bool("dry-run", false, "Select turns and report the count without evaluating")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	opts := runner.RunOptions{
		GuestMode:  *guest,
		Limit:      *limit,
		DateFilter: !*noDateFilter,
		Force:      *forceRun,
	}

	if (*startDate == "") != (*endDate == "") {
		log.Fatal().Msg("start-date and end-date must be provided together")
	}
	if *startDate != "" {
		start, err := time.Parse(dateLayout, *startDate)
		if err != nil {
			log.Fatal().Err(err).Str("start_date", *startDate).Msg("Invalid start-date")
		}
		end, err := time.Parse(dateLayout, *endDate)
		if err != nil {
			log.Fatal().Err(err).Str("end_date", *endDate).Msg("Invalid end-date")
		}
		if !end.After(start) {
			log.Fatal().Msg("end-date must be after start-date")
		}
		opts.Start = start
		opts.End = end
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	cfg := setup.LoadConfig()
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close(context.Background())

	if *dryRun {
		// Return instead of exiting so the deferred deps.Close still runs.
		if err := runDryRun(ctx, deps.Selector, opts); err != nil {
			log.Error().Err(err).Msg("Turn selection failed")
		}
		return
	}

	summary, err := deps.Controller.Run(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Evaluation run failed")
	}

	log.Info().
		Int("turns_selected", summary.TurnsSelected).
		Int("turns_evaluated", summary.TurnsEvaluated).
		Int("turns_failed_entirely", summary.TurnsFailedEntirely).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("Run finished")
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}

type turnSelector interface {
	Select(ctx context.Context, sel store.Selection) ([]models.Turn, error)
}

func runDryRun(ctx context.Context, selector turnSelector, opts runner.RunOptions) error {
	turns, err := selector.Select(ctx, store.Selection{
		GuestMode:  opts.GuestMode,
		Limit:      opts.Limit,
		DateFilter: opts.DateFilter,
		Start:      opts.Start,
		End:        opts.End,
	})
	if err != nil {
		return err
	}

	for _, turn := range turns {
		log.Info().
			Str("chat_id", turn.ChatID).
			Str("message_id", turn.MessageID).
			Time("created_at", turn.CreatedAt).
			Msg("Would evaluate")
	}

	log.Info().Int("total", len(turns)).Msg("Dry run complete, nothing evaluated")
	return nil
}
