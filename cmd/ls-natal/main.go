// Command ls-natal casts natal charts in the terminal: an interactive wheel
// TUI, plus headless chart, reading and positions commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/config"
	"github.com/litescript/ls-natal/internal/ephem"
	"github.com/litescript/ls-natal/internal/logging"
	"github.com/litescript/ls-natal/internal/natal"
	"github.com/litescript/ls-natal/internal/oracle"
	"github.com/litescript/ls-natal/internal/state"
	"github.com/litescript/ls-natal/internal/ui"
	"github.com/litescript/ls-natal/internal/version"
)

var (
	cfgFile string

	// Subject flags shared by the headless commands.
	flagName   string
	flagGender string
	flagDate   string
	flagTime   string

	cfg    config.Config
	logger *zap.Logger
)

// Watch interval bounds for transit mode.
const (
	minWatch = 10 * time.Second
	maxWatch = 24 * time.Hour
)

var rootCmd = &cobra.Command{
	Use:   "ls-natal",
	Short: "Natal charts in the terminal",
	Long: `ls-natal casts natal charts: the seven classical bodies projected onto
the zodiac for a birth date and time, drawn as a wheel in the terminal or
exported as SVG, with optional AI oracle readings.

Run without arguments to launch the interactive TUI.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger = logging.New(logging.ParseLevel(cfg.LogLevel))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute a chart and write the wheel as SVG",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

var readingCmd = &cobra.Command{
	Use:   "reading",
	Short: "Generate an oracle reading for a chart",
	Args:  cobra.NoArgs,
	RunE:  runReading,
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Print body positions for a birth moment or the current sky",
	Args:  cobra.NoArgs,
	RunE:  runPositions,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ls-natal v%s\n", version.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .ls-natal.yaml)")
	rootCmd.PersistentFlags().String("ephem", "analytic", "ephemeris provider: analytic, horizons or auto")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("ephemeris", rootCmd.PersistentFlags().Lookup("ephem"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	for _, c := range []*cobra.Command{chartCmd, readingCmd, positionsCmd} {
		c.Flags().StringVar(&flagDate, "date", "", "birth date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagTime, "time", "", "birth time (HH:MM local, blank = noon)")
	}
	for _, c := range []*cobra.Command{chartCmd, readingCmd} {
		c.Flags().StringVar(&flagName, "name", "", "subject name")
		c.Flags().StringVar(&flagGender, "gender", "", "subject gender")
	}

	chartCmd.Flags().Float64("size", 0, "wheel size in px (0 = config chart_size)")
	chartCmd.Flags().String("out", "chart.svg", "SVG output path")
	chartCmd.Flags().String("json", "", "also export chart JSON to path (- for stdout)")

	readingCmd.Flags().Bool("raw", false, "print raw markdown without terminal rendering")

	positionsCmd.Flags().Bool("now", false, "chart the current sky instead of a birth moment")
	positionsCmd.Flags().Duration("watch", 0, "with --now, recompute at this interval and log transit events")

	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(readingCmd)
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-natal")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LSNATAL")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}

// buildProvider assembles the configured ephemeris provider. The TUI passes
// a nop logger so provider warnings can't tear the alt-screen.
func buildProvider(lg *zap.Logger) natal.Provider {
	return ephem.New(ephem.ParseMode(cfg.Ephemeris), ephem.Options{
		Timeout: cfg.HTTPTimeout,
		Logger:  lg,
	})
}

// buildOracle assembles the reading generator, or nil without an API key.
func buildOracle(lg *zap.Logger) *oracle.Generator {
	if cfg.APIKey == "" {
		return nil
	}

	oc := oracle.DefaultConfig(cfg.APIKey)
	if cfg.Model != "" {
		oc.Model = cfg.Model
	}
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	client := oracle.NewGeminiClient(oc, lg)
	return oracle.NewGenerator(client, client.Model(), lg)
}

// momentFromFlags combines --date and --time. A blank time means noon, the
// traditional assumption for unknown birth times.
func momentFromFlags() (natal.BirthMoment, error) {
	if flagDate == "" {
		return natal.BirthMoment{}, fmt.Errorf("--date is required (YYYY-MM-DD)")
	}
	clock := flagTime
	if clock == "" {
		clock = "12:00"
	}
	return natal.ParseMoment(flagDate, clock)
}

func subjectFromFlags(moment natal.BirthMoment) natal.Subject {
	return natal.Subject{Name: flagName, Gender: flagGender, Moment: moment}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the TUI needs a terminal; see ls-natal --help for headless commands")
	}

	lg := logging.Nop()

	stateMgr := state.NewManager(state.DefaultConfig())
	proj := natal.NewProjector(buildProvider(lg))
	gen := buildOracle(lg)

	p := tea.NewProgram(ui.New(stateMgr, proj, gen), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func runChart(cmd *cobra.Command, args []string) error {
	moment, err := momentFromFlags()
	if err != nil {
		return err
	}

	proj := natal.NewProjector(buildProvider(logger))
	positions := proj.Positions(moment)
	aspects := natal.FindAspects(positions)

	logger.Info("chart computed",
		zap.String("provider", proj.ProviderName()),
		zap.String("moment", moment.String()),
		zap.Int("valid", natal.ValidCount(positions)),
		zap.Int("aspects", len(aspects)))

	size, _ := cmd.Flags().GetFloat64("size")
	if size <= 0 {
		size = cfg.ChartSize
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		if err := writeSVGFile(outPath, positions, aspects, size); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
	}

	jsonPath, _ := cmd.Flags().GetString("json")
	if jsonPath != "" {
		export := natal.ExportChart(subjectFromFlags(moment), positions, aspects, proj.ProviderName())
		if jsonPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON: %w", err)
			}
		} else {
			f, err := os.Create(jsonPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", jsonPath, err)
			}
			if err := export.WriteJSON(f); err != nil {
				f.Close()
				return fmt.Errorf("write JSON: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", jsonPath, err)
			}
			fmt.Printf("wrote %s\n", jsonPath)
		}
	}

	return nil
}

// writeSVGFile renders the wheel into path.
func writeSVGFile(path string, positions []natal.BodyPosition, aspects []natal.AspectHit, size float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	chart.WriteSVG(f, chart.Layout(positions, aspects, size))
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func runReading(cmd *cobra.Command, args []string) error {
	moment, err := momentFromFlags()
	if err != nil {
		return err
	}

	gen := buildOracle(logger)
	if gen == nil {
		return fmt.Errorf("readings need an API key: set GEMINI_API_KEY or api_key in .ls-natal.yaml")
	}

	proj := natal.NewProjector(buildProvider(logger))
	positions := proj.Positions(moment)
	aspects := natal.FindAspects(positions)

	ctx, cancel := signalContext()
	defer cancel()

	r, err := gen.Generate(ctx, subjectFromFlags(moment), positions, aspects)
	if err != nil {
		return fmt.Errorf("generate reading: %w", err)
	}

	raw, _ := cmd.Flags().GetBool("raw")
	if raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(r.Markdown)
		return nil
	}

	out, err := glamour.Render(r.Markdown, "auto")
	if err != nil {
		// Styling is decoration; the reading itself must still come out.
		fmt.Println(r.Markdown)
		return nil
	}
	fmt.Print(out)
	return nil
}

func runPositions(cmd *cobra.Command, args []string) error {
	nowMode, _ := cmd.Flags().GetBool("now")
	watch, _ := cmd.Flags().GetDuration("watch")

	proj := natal.NewProjector(buildProvider(logger))

	if !nowMode {
		if watch > 0 {
			return fmt.Errorf("--watch needs --now: a birth moment never moves")
		}
		moment, err := momentFromFlags()
		if err != nil {
			return err
		}
		positions := proj.Positions(moment)
		natal.WritePositionsTable(os.Stdout, positions, natal.FindAspects(positions), moment.Local())
		return nil
	}

	if watch == 0 {
		t := time.Now()
		positions := proj.PositionsAt(t)
		natal.WritePositionsTable(os.Stdout, positions, natal.FindAspects(positions), t)
		return nil
	}

	return watchSky(proj, watch)
}

// watchSky recomputes the current sky at an interval, printing the table,
// per-body daily motion, and any boundary-crossing events since the last
// sample. Runs until SIGINT/SIGTERM.
func watchSky(proj *natal.Projector, interval time.Duration) error {
	if interval < minWatch {
		interval = minWatch
	}
	if interval > maxWatch {
		interval = maxWatch
	}

	ctx, cancel := signalContext()
	defer cancel()

	mgr := state.NewManager(state.DefaultConfig())
	var lastEvent time.Time

	sample := func() {
		start := time.Now()
		positions := proj.PositionsAt(start)
		aspects := natal.FindAspects(positions)
		mgr.UpdateChart(positions, aspects, proj.ProviderName(), time.Since(start), nil)

		natal.WritePositionsTable(os.Stdout, positions, aspects, start)
		printDailyMotion(mgr, positions)

		for _, e := range mgr.RecentEvents(len(positions)) {
			if !e.Timestamp.After(lastEvent) {
				continue
			}
			lastEvent = e.Timestamp
			switch e.Type {
			case state.EventIngress:
				fmt.Printf("event: %s %s → %s\n", e.Body, e.OldSector, e.NewSector)
			case state.EventBodyLost:
				fmt.Printf("event: %s lost (%s)\n", e.Body, e.OldSector)
			case state.EventBodyRestored:
				fmt.Printf("event: %s restored (%s)\n", e.Body, e.NewSector)
			}
		}

		logger.Debug("sky sampled",
			zap.Int("valid", natal.ValidCount(positions)),
			zap.Duration("took", time.Since(start)))
	}

	sample()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return nil
		case <-ticker.C:
			fmt.Println()
			sample()
		}
	}
}

// printDailyMotion prints one line of estimated motion, prograde or
// retrograde, once two samples exist.
func printDailyMotion(mgr *state.Manager, positions []natal.BodyPosition) {
	line := ""
	for _, p := range positions {
		if !p.Valid {
			continue
		}
		motion := mgr.DailyMotionDeg(p.Body.Key)
		if motion == 0 {
			continue
		}
		line += fmt.Sprintf("  %c %+.2f°/d", p.Body.Glyph, motion)
		if motion < 0 {
			line += " ℞"
		}
	}
	if line != "" {
		fmt.Println("motion:" + line)
	}
}
