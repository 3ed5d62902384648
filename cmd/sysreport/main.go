package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
	"github.com/go-tangra/go-tangra-sysreport/internal/config"
	"github.com/go-tangra/go-tangra-sysreport/internal/daemon"
	"github.com/go-tangra/go-tangra-sysreport/internal/logging"
	"github.com/go-tangra/go-tangra-sysreport/internal/platform"
	"github.com/go-tangra/go-tangra-sysreport/internal/sender"
	"github.com/go-tangra/go-tangra-sysreport/internal/store"
	"github.com/go-tangra/go-tangra-sysreport/internal/winsvc"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

const serviceName = "TangraSysReport"

var (
	cfgFile   string
	outputDir string
	sendEmail bool
	purgeDays int
)

var rootCmd = &cobra.Command{
	Use:   "sysreport",
	Short: "Generate a system inventory report",
	Long: `sysreport collects hardware, network, software and security details of
the local machine and writes them to a timestamped JSON report.

Run without a subcommand to generate one report. With --email the report is
also mailed to the configured recipient; a failed delivery does not change
the exit status.`,
	Example:      "  sysreport --email",
	SilenceUsage: true,
	RunE:         runReport,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate reports periodically until stopped",
	RunE:  runSchedule,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete reports older than the specified number of days",
	RunE:  runPurge,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sysreport %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the Windows service running scheduled reports",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install as a Windows service",
	RunE:  runServiceInstall,
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Windows service",
	RunE:  runServiceUninstall,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sysreport.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory for report files (default: reports)")
	rootCmd.PersistentFlags().BoolVar(&sendEmail, "email", false, "send the report by email")

	purgeCmd.Flags().IntVar(&purgeDays, "days", 0, "delete reports older than this many days (default: report.retention_days, or 30)")

	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serviceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if outputDir != "" {
		cfg.Report.Dir = outputDir
	}
	return cfg, nil
}

// app wires the report pipeline from configuration.
type app struct {
	pipeline *daemon.Pipeline
	store    *store.Store
}

func newApp(cmd *cobra.Command, cfg *config.Config, logger log.Logger) (*app, error) {
	log.SetLogger(logger)

	src := platform.Sources()
	col := collector.New(src,
		collector.WithLogger(logger),
		collector.WithConcurrency(cfg.Collector.Concurrency),
		collector.WithCPUSampleWindow(cfg.Collector.CPUSample),
		collector.WithFirewallCommand(collector.FirewallCommand{
			Name:         cfg.Firewall.Command,
			Args:         cfg.Firewall.Args,
			EnabledToken: cfg.Firewall.EnabledToken,
			Timeout:      cfg.Firewall.Timeout,
		}),
	)

	st, err := store.New(cfg.Report.Dir)
	if err != nil {
		return nil, err
	}

	var notifier daemon.Notifier
	if sendEmail {
		m, err := sender.NewMailer(cfg.Mail, src.Host, logger)
		if err != nil {
			log.NewHelper(logger).Errorf("email disabled: %v", err)
		} else {
			notifier = m
		}
	}

	return &app{
		pipeline: daemon.NewPipeline(col, st, notifier, cmd.OutOrStdout(), logger),
		store:    st,
	}, nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cmd, cfg, logging.New(cfg.Log.Level, os.Stderr))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = a.pipeline.RunOnce(ctx, sendEmail)
	return err
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, os.Stderr)
	asService := winsvc.IsWindowsService()
	if asService {
		if el, err := winsvc.EventLogger(serviceName); err == nil {
			logger = log.NewFilter(el, log.FilterLevel(log.ParseLevel(cfg.Log.Level)))
		}
	}

	a, err := newApp(cmd, cfg, logger)
	if err != nil {
		return err
	}
	sched := daemon.Schedule{
		Interval:  cfg.Schedule.Interval,
		Email:     sendEmail,
		Retention: days(cfg.Report.RetentionDays),
		Purger:    a.store,
	}

	if asService {
		return winsvc.RunService(serviceName, logger, func(ctx context.Context) error {
			return a.pipeline.Run(ctx, sched)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.pipeline.Run(ctx, sched)
}

func runPurge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n := purgeDays
	if n <= 0 {
		n = cfg.Report.RetentionDays
	}
	if n <= 0 {
		n = 30
	}

	st, err := store.New(cfg.Report.Dir)
	if err != nil {
		return err
	}
	purged, err := st.Purge(cmd.Context(), days(n))
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d reports older than %d days\n", purged, n)
	return nil
}

func runServiceInstall(cmd *cobra.Command, _ []string) error {
	exePath, err := winsvc.ExePath()
	if err != nil {
		return err
	}

	svcArgs := []string{"schedule"}
	if sendEmail {
		svcArgs = append(svcArgs, "--email")
	}
	if cfgFile != "" {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		svcArgs = append(svcArgs, "--config", abs)
	}
	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		svcArgs = append(svcArgs, "--output-dir", abs)
	}

	if err := winsvc.Install(
		serviceName,
		"Tangra System Report",
		"Collects a system inventory report on a schedule and optionally mails it.",
		exePath,
		svcArgs,
	); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Service %s installed successfully\n", serviceName)
	return nil
}

func runServiceUninstall(cmd *cobra.Command, _ []string) error {
	if err := winsvc.Uninstall(serviceName); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Service %s uninstalled successfully\n", serviceName)
	return nil
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
