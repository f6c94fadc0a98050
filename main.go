package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"selekt/internal/config"
	"selekt/internal/dispatch"
	"selekt/internal/eventbus"
	"selekt/internal/ui"
)

var (
	configPath  string
	singleFlag  bool
	forceCtrl   bool
	clearOn     string
	writeConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "selekt",
	Short: "Click, ctrl+click and shift+click selection for terminal lists",
	Long: `selekt shows the configured lists side by side and lets you select items
with the mouse: click selects one item, alt+click toggles an item and
shift+click selects a range. Only one list holds a selection at a time.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: user config dir)")
	rootCmd.Flags().BoolVar(&singleFlag, "single", false, "Allow at most one selected item per list")
	rootCmd.Flags().BoolVar(&forceCtrl, "force-ctrl", false, "Treat every click as ctrl+click")
	rootCmd.Flags().StringVar(&clearOn, "clear-on", "press", "Clear on outside press or release")
	rootCmd.Flags().BoolVar(&writeConfig, "write-config", false, "Write the effective config and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	// Set up logging
	logFile, err := os.OpenFile("selekt.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	defer bus.Close()

	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceWithPath(configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("Config written")
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	uiModel, err := ui.NewModel(bus, cfg)
	if err != nil {
		return err
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	uiModel.SetProgram(p)

	stop := forwardEvents(bus, p)
	defer stop()

	log.Printf("Starting UI with %d lists", len(cfg.Lists))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("run: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("single") {
		cfg.Engine.SingleSelect = singleFlag
	}
	if flags.Changed("force-ctrl") {
		cfg.Engine.ForceCtrl = forceCtrl
	}
	if flags.Changed("clear-on") {
		if _, ok := dispatch.ParseKind(clearOn); !ok {
			return fmt.Errorf("--clear-on must be press or release, got %q", clearOn)
		}
		cfg.Engine.ClearOn = clearOn
	}
	return cfg.Validate()
}

// forwardEvents relays bus events to the program. The returned func stops it.
func forwardEvents(bus eventbus.EventBus, p *tea.Program) func() {
	eventChan := make(chan eventbus.DomainEvent, 100)
	done := make(chan struct{})

	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		case <-done:
		default:
			log.Println("Event channel full, dropping event")
		}
	}

	var unsubs []func()
	for _, t := range []eventbus.EventType{
		eventbus.EventSelectionChanged,
		eventbus.EventSelectionCleared,
		eventbus.EventEngineActivated,
		eventbus.EventEngineToggled,
		eventbus.EventForceCtrlChanged,
		eventbus.EventError,
	} {
		unsubs = append(unsubs, bus.Subscribe(t, forward))
	}

	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
		close(done)
	}
}
