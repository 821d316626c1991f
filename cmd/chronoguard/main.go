package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chronoguard/chronoguard/internal/capture"
	"github.com/chronoguard/chronoguard/internal/config"
	"github.com/chronoguard/chronoguard/internal/daemon"
	"github.com/chronoguard/chronoguard/internal/database"
	"github.com/chronoguard/chronoguard/internal/nativemsg"
	"github.com/chronoguard/chronoguard/internal/reporter"
	"github.com/chronoguard/chronoguard/internal/web"
	"github.com/chronoguard/chronoguard/pkg/provider"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "monitor":
		runMonitor(os.Args[2:])
	case "serve":
		runServe()
	case "report":
		runReport(os.Args[2:])
	case "native-host":
		runNativeHost()
	case "install-manifest":
		runInstallManifest(os.Args[2:])
	case "status":
		showStatus()
	case "stop":
		stopDaemon()
	case "version":
		fmt.Printf("chronoguard version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`chronoguard - Privacy-first activity tracker

Usage:
  chronoguard <command> [options]

Commands:
  monitor [--duration N] [--daemon]   Track foreground activity (N seconds, 0 = until signal)
  serve                               Run monitoring plus the local report API, detached
  report --type <daily|weekly|productivity>
         [--date YYYY-MM-DD] [--format <table|json|csv>]
  native-host                         Run the browser extension messaging host on stdio
  install-manifest [--extension-id ID]
  status                              Show daemon status and store diagnostics
  stop                                Stop the detached daemon
  version                             Show version information
  help                                Show this help message

Examples:
  chronoguard monitor --duration 3600
  chronoguard report --type daily --format csv
  chronoguard report --type weekly --date 2026-08-24

Environment Variables:
  CHRONOGUARD_DB_PATH          Database file path
  CHRONOGUARD_SAMPLE_INTERVAL  Sampling interval in seconds
  CHRONOGUARD_IDLE_THRESHOLD   Idle threshold in seconds
  CHRONOGUARD_PID_FILE         PID file path
  CHRONOGUARD_WEB_HOST         Report API host
  CHRONOGUARD_WEB_PORT         Report API port

Version: %s
`, version)
}

// openStore connects and migrates the event store.
func openStore(cfg *config.Config) (*database.DB, *database.Repository) {
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Initialize(cfg.GetSampleIntervalSeconds()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	return db, database.NewRepository(db)
}

func runMonitor(args []string) {
	flags := flag.NewFlagSet("monitor", flag.ExitOnError)
	duration := flags.Int("duration", 0, "seconds to monitor, 0 means until interrupted")
	detach := flags.Bool("daemon", false, "run detached")
	flags.Parse(args)

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *detach {
		dm := daemon.New(cfg.Daemon.PIDFile)
		if running, pid, err := dm.IsRunning(); err != nil {
			log.Fatalf("Failed to check daemon status: %v", err)
		} else if running {
			log.Fatalf("Daemon is already running (PID: %d)", pid)
		}

		if os.Getenv("CHRONOGUARD_DAEMON_CHILD") != "1" {
			daemonize(cfg)
			return
		}

		redirectLogs(cfg)
		if err := dm.WritePID(); err != nil {
			log.Fatalf("Failed to write PID file: %v", err)
		}
		defer dm.RemovePID()
	}

	db, repo := openStore(cfg)
	defer db.Close()

	prov, err := provider.New()
	if err != nil {
		log.Fatalf("Failed to initialize capability provider: %v", err)
	}
	defer prov.Close()

	engine := capture.NewEngine(cfg, repo, prov)
	if err := engine.Start(); err != nil {
		log.Fatalf("Failed to start capture: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if *duration > 0 {
		select {
		case <-time.After(time.Duration(*duration) * time.Second):
		case <-sigChan:
		}
	} else {
		<-sigChan
	}

	engine.Stop()
}

func runServe() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	if running, pid, err := dm.IsRunning(); err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	} else if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if os.Getenv("CHRONOGUARD_DAEMON_CHILD") != "1" {
		daemonize(cfg)
		return
	}

	redirectLogs(cfg)

	db, repo := openStore(cfg)
	defer db.Close()

	prov, err := provider.New()
	if err != nil {
		log.Fatalf("Failed to initialize capability provider: %v", err)
	}
	defer prov.Close()

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	engine := capture.NewEngine(cfg, repo, prov)
	rep := reporter.New(repo)
	webServer := web.NewServer(cfg, repo, rep)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Report API error: %v", err)
		}
	}()

	if err := engine.Start(); err != nil {
		log.Fatalf("Failed to start capture: %v", err)
	}

	log.Printf("Configuration:\n%s", cfg.String())

	<-sigChan
	log.Println("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	engine.Stop()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down report API: %v", err)
	}

	log.Println("Daemon stopped successfully")
}

func runReport(args []string) {
	flags := flag.NewFlagSet("report", flag.ExitOnError)
	reportType := flags.String("type", "daily", "report type: daily, weekly, productivity")
	date := flags.String("date", time.Now().Format("2006-01-02"), "report date (YYYY-MM-DD)")
	format := flags.String("format", "table", "output format: table, json, csv")
	flags.Parse(args)

	cfg := config.New()

	db, repo := openStore(cfg)
	defer db.Close()

	rep := reporter.New(repo)

	switch *reportType {
	case "daily":
		report, err := rep.Daily(*date)
		if err != nil {
			log.Fatalf("Failed to generate report: %v", err)
		}
		switch *format {
		case "json":
			printJSON(report)
		case "csv":
			fmt.Print(reporter.ExportCSV(report))
		default:
			fmt.Println(renderDailyReport(report))
		}

	case "weekly":
		report, err := rep.Weekly(*date)
		if err != nil {
			log.Fatalf("Failed to generate report: %v", err)
		}
		if *format == "json" {
			printJSON(report)
		} else {
			fmt.Println(renderWeeklyReport(report))
		}

	case "productivity":
		report, err := rep.Productivity(*date)
		if err != nil {
			log.Fatalf("Failed to generate report: %v", err)
		}
		if *format == "json" {
			printJSON(report)
		} else {
			fmt.Println(renderProductivityReport(report))
		}

	default:
		fmt.Printf("Unknown report type: %s\n", *reportType)
		fmt.Println("Available types: daily, weekly, productivity")
		os.Exit(1)
	}
}

func printJSON(report any) {
	out, err := reporter.ExportJSON(report)
	if err != nil {
		log.Fatalf("Failed to format JSON: %v", err)
	}
	fmt.Println(out)
}

func runNativeHost() {
	cfg := config.New()

	// The browser owns stdout; route logs to the daemon log file so
	// they never corrupt the frame stream.
	redirectLogs(cfg)

	db, repo := openStore(cfg)
	defer db.Close()

	host := nativemsg.NewHost(repo, os.Stdin, os.Stdout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		host.Stop()
	}()

	if err := host.Run(); err != nil {
		log.Fatalf("Native messaging host error: %v", err)
	}
}

func runInstallManifest(args []string) {
	flags := flag.NewFlagSet("install-manifest", flag.ExitOnError)
	extensionID := flags.String("extension-id", "chronoguard-extension-id", "Chrome extension ID allowed to connect")
	flags.Parse(args)

	manifest, err := nativemsg.NewManifest(*extensionID)
	if err != nil {
		log.Fatalf("Failed to build manifest: %v", err)
	}

	path, err := manifest.Install()
	if err != nil {
		log.Fatalf("Failed to install manifest: %v", err)
	}

	fmt.Printf("Native messaging manifest installed at: %s\n", path)
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}

	if running {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Sample Interval: %v\n", cfg.Capture.SampleInterval)
	} else {
		fmt.Println("Status: Not running")
	}

	db, repo := openStore(cfg)
	defer db.Close()

	count, err := repo.Count()
	if err != nil {
		fmt.Printf("Could not read store: %v\n", err)
		return
	}
	fmt.Printf("Stored samples: %d\n", count)

	prov, err := provider.New()
	if err != nil {
		fmt.Printf("Could not detect current window: %v\n", err)
		return
	}
	defer prov.Close()

	if app, err := prov.GetFrontmostApp(); err == nil && app != nil {
		fmt.Printf("\nCurrent Window:\n")
		fmt.Printf("  App: %s\n", app.Name)
		fmt.Printf("  Title: %s\n", app.WindowTitle)
	}

	if idle, err := prov.GetIdleSeconds(); err == nil {
		fmt.Printf("  Idle Time: %ds\n", idle)
	}
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}

	fmt.Println("Daemon stopped successfully")
}

func redirectLogs(cfg *config.Config) {
	logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
	}
}

// daemonize re-executes the current command in a detached session.
func daemonize(cfg *config.Config) {
	env := os.Environ()
	env = append(env, "CHRONOGUARD_DAEMON_CHILD=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys: &syscall.SysProcAttr{
			Setsid: true,
		},
	}

	process, err := os.StartProcess(os.Args[0], os.Args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
}
