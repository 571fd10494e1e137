package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/easynmt/internal/batch"
	"codeberg.org/snonux/easynmt/internal/cli"
	"codeberg.org/snonux/easynmt/internal/translation"
)

// maxConcurrent bounds the goroutines started for one command with
// --no-queue.
const maxConcurrent = 8

// preloadSource is the model loaded by `easynmt preload` without --source.
const preloadSource = "zh"

// Processor handles the main translation workflows
type Processor struct {
	flags    *cli.Flags
	settings cli.Settings
	client   *translation.Client
	launcher translation.Launcher
	logger   zerolog.Logger

	out    io.Writer
	errOut io.Writer
}

// NewProcessor creates a new processor writing results to stdout
func NewProcessor(flags *cli.Flags, settings cli.Settings, client *translation.Client, logger zerolog.Logger) *Processor {
	return &Processor{
		flags:    flags,
		settings: settings,
		client:   client,
		launcher: translation.NewProbe(time.Second, logger),
		logger:   logger,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
}

// SetOutput redirects results (out) and progress messages (errOut).
func (p *Processor) SetOutput(out, errOut io.Writer) {
	p.out = out
	p.errOut = errOut
}

// SetLauncher replaces the readiness probe used by WaitForServer.
func (p *Processor) SetLauncher(launcher translation.Launcher) {
	p.launcher = launcher
}

// WaitForServer blocks until the server answers, for at most --wait. It is
// a no-op when --wait is not set.
func (p *Processor) WaitForServer(ctx context.Context) error {
	if p.flags.Wait <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.flags.Wait)
	defer cancel()

	p.logger.Info().
		Str("host", p.settings.Host).
		Int("port", p.settings.Port).
		Dur("wait", p.flags.Wait).
		Msg("waiting for translation service")

	return p.launcher.EnsureRunning(ctx, p.settings.Host, p.settings.Port)
}

// ProcessTexts translates texts given on the command line and prints one
// translation per line in argument order. The first failure aborts.
func (p *Processor) ProcessTexts(ctx context.Context, texts []string) error {
	results := make([]string, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())
	for i, text := range texts {
		g.Go(func() error {
			translated, err := p.client.Translate(gctx, p.request(text))
			if err != nil {
				return fmt.Errorf("failed to translate '%s': %w", text, err)
			}
			results[i] = translated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, translated := range results {
		if _, err := fmt.Fprintln(p.out, translated); err != nil {
			return err
		}
	}
	return nil
}

// ProcessBatch translates every untranslated line of --batch and writes
// "text = translation" lines. Failed lines are reported and left out.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	skippedCount := 0
	for _, entry := range entries {
		if entry.Translated() {
			skippedCount++
		}
	}

	errs := make([]error, len(entries))

	var g errgroup.Group
	g.SetLimit(p.concurrency())
	for i := range entries {
		if entries[i].Translated() {
			continue
		}
		g.Go(func() error {
			translated, err := p.client.Translate(ctx, p.request(entries[i].Text))
			if err != nil {
				errs[i] = err
				return nil
			}
			entries[i].Translation = translated
			return nil
		})
	}
	g.Wait()

	errorCount := 0
	for i, err := range errs {
		if err != nil {
			fmt.Fprintf(p.errOut, "Error translating '%s': %v\n", entries[i].Text, err)
			errorCount++
		}
	}

	if err := batch.WriteResults(p.out, entries); err != nil {
		return err
	}

	// Print summary
	processedCount := len(entries) - skippedCount - errorCount
	fmt.Fprintf(p.errOut, "\n=== Batch Translation Summary ===\n")
	fmt.Fprintf(p.errOut, "Total texts: %d\n", len(entries))
	fmt.Fprintf(p.errOut, "Translated: %d\n", processedCount)
	fmt.Fprintf(p.errOut, "Skipped (already translated): %d\n", skippedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.errOut, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.errOut, "=================================\n")

	if errorCount > 0 {
		return fmt.Errorf("%d of %d texts failed to translate", errorCount, len(entries))
	}
	return nil
}

// Preload loads the model for the configured language pair (zh -> target
// when no source is set) and prints "ready.".
func (p *Processor) Preload(ctx context.Context) error {
	source := p.settings.Source
	if source == "" {
		source = preloadSource
	}

	start := time.Now()
	if err := p.client.Preload(ctx, source, p.settings.Target); err != nil {
		return err
	}
	p.logger.Info().
		Str("source_lang", source).
		Str("target_lang", p.settings.Target).
		Dur("took", time.Since(start)).
		Msg("model preloaded")

	_, err := fmt.Fprintln(p.out, "ready.")
	return err
}

// concurrency is 1 while the queue is in use: the queue runs one request at
// a time anyway, and submitting in input order keeps the wire order equal to
// argument or file order.
func (p *Processor) concurrency() int {
	if p.flags.NoQueue {
		return maxConcurrent
	}
	return 1
}

func (p *Processor) request(text string) translation.Request {
	opts := p.flags.Options()
	opts.Debug = p.settings.Debug
	return translation.Request{
		Text:       text,
		SourceLang: p.settings.Source,
		TargetLang: p.settings.Target,
		Options:    opts,
	}
}
