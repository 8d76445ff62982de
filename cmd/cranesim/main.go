// Command cranesim runs the tower crane headless: an autopilot plays the
// keyboard, every frame is traced as JSON and the yard is printed as a
// plan view at the end.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/setanarut/crane"
	"github.com/setanarut/crane/internal/config"
	"github.com/setanarut/crane/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appName = "cranesim"

func main() {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, appName+":", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	configDir := fs.StringP("config", "c", ".", "directory holding "+config.FileName)
	tracePath := fs.StringP("trace", "t", "", "write a JSON frame trace to this file (- for stdout)")
	traceEvery := fs.Uint64("trace-every", 10, "trace one frame in N")
	plan := fs.Bool("plan", true, "print the plan view when done")
	logFile := fs.Bool("log-file", false, "also write logs to a file under logsDir")
	fs.Int("fps", 60, "frames per simulated second")
	fs.Duration("duration", 30*time.Second, "simulated time limit")
	fs.String("log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	bindFlag("frameRate", fs.Lookup("fps"))
	bindFlag("duration", fs.Lookup("duration"))
	bindFlag("logLevel", fs.Lookup("log-level"))

	cfgErr := config.Load(*configDir)
	var notFound viper.ConfigFileNotFoundError
	if cfgErr != nil && !errors.As(cfgErr, &notFound) {
		return cfgErr
	}

	logs := logging.NewSlogManager()
	var file, console io.Writer = os.Stderr, nil
	if *logFile {
		dir := config.GetString("logsDir")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating logs dir: %w", err)
		}
		f, err := os.Create(logging.LogFilePath(dir, appName, time.Now()))
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		file, console = f, os.Stderr
	}
	logs.Setup(file, console, config.GetString("logLevel"))
	logger := logs.Logger()
	if cfgErr != nil {
		logger.Warn("No config file, using defaults", "dir", *configDir)
	}

	opts, err := config.Options()
	if err != nil {
		return err
	}
	sim, err := crane.NewSimulation(append(opts, crane.WithLogger(logger))...)
	if err != nil {
		return err
	}

	var tracer *logging.FrameTracer
	if *tracePath != "" {
		w := stdout
		if *tracePath != "-" {
			f, err := os.Create(filepath.Clean(*tracePath))
			if err != nil {
				return fmt.Errorf("creating trace file: %w", err)
			}
			defer f.Close()
			w = f
		}
		tracer = logging.NewFrameTracer(w, "debug")
		tracer.Every = *traceEvery
		sim.OnPhase(tracer.Event)
	}

	fps := config.GetInt("frameRate")
	if fps <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", fps)
	}
	dt := 1 / float64(fps)
	limit := config.GetDuration("duration").Seconds()

	pilot := newAutopilot(sim)
	for sim.Elapsed() < limit {
		if !pilot.steer(dt) {
			break
		}
		sim.Step(dt)
		if tracer != nil {
			tracer.Trace(sim)
		}
	}

	summarize(logger, sim)
	if *plan {
		d := newASCIIDrawer(crane.NewBB(-40, -30, 40, 30), 1)
		crane.DrawPlan(sim, d)
		if _, err := d.WriteTo(stdout); err != nil {
			return err
		}
	}
	return nil
}

func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func summarize(logger *slog.Logger, sim *crane.Simulation) {
	inside := 0
	for _, c := range sim.Yard.Deposited {
		if c.InContainer {
			inside++
		}
	}
	logger.Info("Run finished",
		"frames", sim.Frame(),
		"elapsed", fmt.Sprintf("%.2fs", sim.Elapsed()),
		"deposited", len(sim.Yard.Deposited),
		"inContainer", inside,
		"left", len(sim.Yard.Crates))
}
