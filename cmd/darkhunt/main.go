package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/data"
	"github.com/nightwarden/darkhunt/internal/debugview"
	"github.com/nightwarden/darkhunt/internal/encounter"
	"github.com/nightwarden/darkhunt/internal/scripting"
	"github.com/nightwarden/darkhunt/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(level string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             darkhunt  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m     light-reactive enemy encounter sim    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mlevel:\033[0m %s\n\n", level)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	view := flag.Bool("view", false, "draw the encounter in the terminal")
	realtime := flag.Bool("realtime", false, "pace ticks by the wall clock")
	duration := flag.Duration("duration", -1, "simulated time to run (0 = until interrupted)")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/darkhunt.toml"
	if p := os.Getenv("DARKHUNT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *duration >= 0 {
		cfg.Simulation.Duration = *duration
	}
	if *view && cfg.Logging.File == "" {
		// the overlay owns the terminal
		cfg.Logging.File = "darkhunt.log"
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load level and scripts
	level, err := data.LoadLevel(cfg.Simulation.LevelPath)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	if !*view {
		printBanner(level.Name)
		printSection("level")
		printStat("darkness zones", len(level.DarknessZones))
		printStat("spawn points", len(level.Spawns))
		printStat("players", len(level.Players))
		printStat("enemies", len(level.Enemies))
		printStat("room lights", len(level.RoomLights))
		printStat("lamps", len(level.Lamps))
		printStat("flashlights", len(level.Flashlights))
		fmt.Println()
	}

	scripts, err := scripting.NewEngine(cfg.Simulation.ScriptsDir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()

	out, err := telemetry.NewOutput(cfg.Telemetry.OutputDir)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Error("close telemetry", zap.Error(err))
		}
	}()

	// 4. Build the encounter
	eng, err := encounter.New(*cfg, level, encounter.Options{Scripts: scripts, Output: out}, log)
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	if !*view {
		printOK("encounter ready")
		if dir := out.Dir(); dir != "" {
			printOK("telemetry → " + dir)
		}
		fmt.Println()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)
	go func() {
		select {
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	// 5. Optional terminal overlay
	if *view {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		eng.AttachView(debugview.New(screen, eng.ViewBounds()), 1)
		go pollKeys(screen, cancel)
		// the overlay is only readable at wall-clock pace
		*realtime = true
	}

	// 6. Run
	log.Info("encounter started",
		zap.String("level", level.Name),
		zap.Duration("tick", cfg.Simulation.TickRate),
		zap.Duration("duration", cfg.Simulation.Duration),
		zap.Bool("realtime", *realtime))
	err = eng.Run(ctx, cfg.Simulation.Duration, cfg.Simulation.TickRate, *realtime)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s := eng.Summary()
	log.Info("encounter finished",
		zap.Int64("ticks", s.Ticks),
		zap.Duration("elapsed", s.Elapsed),
		zap.Int("transitions", s.Transitions),
		zap.Int("chases", s.Chases),
		zap.Int("repels", s.Repels),
		zap.Int("despawns", s.Despawns),
		zap.Int("exposures", s.Exposures),
		zap.Int("injections", s.Injections))
	return nil
}

// pollKeys stops the run on q or Esc. Returns when the screen is finalized.
func pollKeys(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				cancel()
				return
			}
			switch ev.Rune() {
			case 'q', 'Q':
				cancel()
				return
			}
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		if cfg.Format != "json" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	return zapCfg.Build()
}
