package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"teamcal/internal/app"
	"teamcal/internal/backend"
	"teamcal/internal/logger"
	internalhttp "teamcal/internal/server/http"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "version" {
		printVersion()
		return
	}

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	// An expired backend session is not recoverable locally; stop the
	// process so the operator can re-authenticate.
	api := backend.New(config.Backend, func() {
		log.Warn("session expired, shutting down")
		cancel()
	})

	teamcal := app.New(api, logNotifier{}, terminalConfirmer{})
	if err := teamcal.Start(ctx); err != nil {
		log.Errorf("failed to start session: %v", err)
		return
	}
	if err := teamcal.Refresh(ctx); err != nil {
		log.Errorf("initial feed fetch failed: %v", err)
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(config.Refresh.Cron, func() {
		refreshCtx, cancelRefresh := context.WithTimeout(ctx, 30*time.Second)
		defer cancelRefresh()
		if err := teamcal.Refresh(refreshCtx); err != nil {
			log.Errorf("feed refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Errorf("failed to schedule refresh %q: %v", config.Refresh.Cron, err)
		return
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := internalhttp.NewServer(config.StatusServer, teamcal)

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			log.Error("failed to stop status server: " + err.Error())
		}
	}()

	log.Info("teamcal is running...")

	if err := server.Start(ctx); err != nil {
		log.Error("failed to start status server: " + err.Error())
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}

// logNotifier stands in for the rendering widget: each refetch request is
// only logged together with the snapshot size.
type logNotifier struct{}

func (logNotifier) Refetch() {
	log.Debug("render refetch requested")
}

// terminalConfirmer asks for confirmation on stdin.
type terminalConfirmer struct{}

func (terminalConfirmer) Confirm(prompt string) bool {
	os.Stdout.WriteString(prompt + " [y/N]: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
