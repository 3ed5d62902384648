package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// Collector assembles a report. It never fails.
type Collector interface {
	Collect(ctx context.Context) *collector.Report
}

// Store persists a report and returns the artifact path.
type Store interface {
	Save(rep *collector.Report) (string, error)
}

// Purger removes old artifacts.
type Purger interface {
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Notifier delivers a persisted artifact.
type Notifier interface {
	Send(ctx context.Context, path string) error
}

// Pipeline runs collect, persist and the optional notify step, printing
// progress lines to out.
type Pipeline struct {
	collector Collector
	store     Store
	notifier  Notifier
	out       io.Writer
	log       *log.Helper
}

// NewPipeline creates a Pipeline. notifier may be nil when email is not
// configured.
func NewPipeline(c Collector, s Store, n Notifier, out io.Writer, logger log.Logger) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{
		collector: c,
		store:     s,
		notifier:  n,
		out:       out,
		log:       log.NewHelper(log.With(logger, "module", "daemon")),
	}
}

// RunOnce generates and persists one report and, when email is set, mails
// it. Only a persistence failure is returned; a failed send is reported and
// logged.
func (p *Pipeline) RunOnce(ctx context.Context, email bool) (string, error) {
	fmt.Fprintln(p.out, "Collecting system information...")
	rep := p.collector.Collect(ctx)
	if rep.Error != "" {
		p.log.Errorf("report assembled with error: %s", rep.Error)
	}

	path, err := p.store.Save(rep)
	if err != nil {
		fmt.Fprintf(p.out, "Failed to save report: %v\n", err)
		return "", fmt.Errorf("save report: %w", err)
	}
	fmt.Fprintf(p.out, "Report saved to: %s\n", path)

	if email {
		p.notify(ctx, path)
	}

	fmt.Fprintln(p.out, "Done")
	return path, nil
}

func (p *Pipeline) notify(ctx context.Context, path string) {
	fmt.Fprintln(p.out, "Sending report by email...")
	if p.notifier == nil {
		fmt.Fprintln(p.out, "Email failed: mail is not configured")
		p.log.Warn("email requested but mail is not configured")
		return
	}
	if err := p.notifier.Send(ctx, path); err != nil {
		fmt.Fprintf(p.out, "Email failed: %v\n", err)
		p.log.Errorf("send report: %v", err)
		return
	}
	fmt.Fprintln(p.out, "Email sent")
}

// Schedule configures Run.
type Schedule struct {
	Interval  time.Duration
	Email     bool
	Retention time.Duration
	Purger    Purger
}

// Run executes the pipeline immediately and then every Interval until ctx
// is cancelled. Failed runs are logged and retried at the next tick.
func (p *Pipeline) Run(ctx context.Context, s Schedule) error {
	if s.Interval <= 0 {
		return errors.New("schedule interval must be positive")
	}
	p.log.Infof("scheduled mode: every %s", s.Interval)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		p.tick(ctx, s)

		select {
		case <-ctx.Done():
			p.log.Info("scheduler shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Pipeline) tick(ctx context.Context, s Schedule) {
	if _, err := p.RunOnce(ctx, s.Email); err != nil {
		p.log.Errorf("scheduled run failed: %v", err)
	}
	if s.Purger == nil || s.Retention <= 0 {
		return
	}
	n, err := s.Purger.Purge(ctx, s.Retention)
	if err != nil {
		p.log.Errorf("purge reports: %v", err)
		return
	}
	if n > 0 {
		p.log.Infof("purged %d old reports", n)
	}
}
