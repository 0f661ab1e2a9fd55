package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/kinemove/scenario"
	"github.com/oomph-ac/kinemove/settings"
	"github.com/oomph-ac/kinemove/worker"
	"github.com/sirupsen/logrus"
)

// kinesim runs movement scenarios and prints a determinism checksum for each of them.
func main() {
	configPath := flag.String("config", "kinesim.toml", "path of the harness settings, created when missing")
	stats := flag.Bool("statsview", false, "serve the runtime stats dashboard while running")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	conf, err := readConfig(*configPath)
	if err != nil {
		log.Fatalf("error loading settings: %v", err)
	}
	if err := configureLog(log, conf); err != nil {
		log.Fatalf("error configuring log: %v", err)
	}

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         conf.Sentry.DSN,
			Environment: conf.Sentry.Environment,
		}); err != nil {
			log.Fatalf("sentry.Init: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if *stats || conf.StatsView.Enabled {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(conf.StatsView.Address))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Infof("stats dashboard on http://%s/debug/statsview", conf.StatsView.Address)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths = conf.Simulation.Scenarios
	}
	if len(paths) == 0 {
		log.Fatal("no scenarios to run")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results := runAll(ctx, log, conf, paths)
	failed := false
	for i, r := range results {
		if r.err != nil {
			failed = true
			log.Errorf("%s: %v", paths[i], r.err)
			continue
		}
		status := "ok"
		if !r.res.Passed() {
			failed, status = true, "FAIL"
		}
		fmt.Printf("%-4s %-24s ticks=%-5d checksum=%016x location=%.2f tick=%.1fµs±%.1f\n",
			status, r.res.Name, r.res.Ticks, r.res.Checksum, r.res.Location, r.res.TickMean, r.res.TickStdDev)
		for _, f := range r.res.Failures {
			fmt.Printf("     %s\n", f)
		}
	}
	if failed {
		// Deferred flushes are skipped by os.Exit.
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

type outcome struct {
	res scenario.Result
	err error
}

// runAll runs every scenario on the worker pool. Outcomes are returned in the order of paths.
func runAll(ctx context.Context, log *logrus.Logger, conf settings.Settings, paths []string) []outcome {
	pool := worker.New(log, conf.Simulation.Workers)
	defer pool.Close()

	out := make([]outcome, len(paths))
	for i, path := range paths {
		pool.Submit(func() {
			s, err := scenario.Load(path, conf.Movement)
			if err != nil {
				out[i].err = err
				return
			}
			run, err := s.Build(log)
			if err != nil {
				out[i].err = err
				return
			}
			out[i].res, out[i].err = run.Execute(ctx)
		})
	}
	pool.Wait()
	return out
}

// readConfig loads the settings at path, creating a default settings file first when none exists.
func readConfig(path string) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
	}
	return settings.Load(path)
}

func configureLog(log *logrus.Logger, conf settings.Settings) error {
	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if conf.Log.File == "" {
		return nil
	}
	f, err := os.OpenFile(conf.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}
