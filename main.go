package main

import (
	"fmt"
	"os"

	"github.com/cs-au-dk/mlml/logic/interp"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/utils"
	sl "github.com/cs-au-dk/mlml/utils/slices"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	projectPath string
	verbose     bool
	noColor     bool

	evalWorld string
	evalMode  string
	validMode string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mlml",
	Short: "Evaluate modal formulas over many-lattice Kripke models",
	Long: `mlml loads a project file declaring finite lattices, filters of
designated elements, a many-lattice and a Kripke model, then parses
and evaluates modal formulas over the model under the up or down
interpretation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		utils.SetVerbose(verbose)
		if noColor {
			utils.SetNoColorize(true)
			color.NoColor = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build every structure in the project and report the first violation",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

var evalCmd = &cobra.Command{
	Use:   "eval [formula...]",
	Short: "Evaluate formulas at one world of the model",
	Long: `eval computes the lattice value of each formula at a single world.
Arguments name project formulas or give formula text directly; without
arguments every project formula is evaluated.`,
	Args: cobra.ArbitraryArgs,
	RunE: runEval,
}

var validCmd = &cobra.Command{
	Use:   "valid [formula...]",
	Short: "Check formulas for validity across all worlds",
	Long: `valid evaluates each formula at every world of the model and reports
whether all of its values are designated by the worlds' filters.`,
	Args: cobra.ArbitraryArgs,
	RunE: runValid,
}

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Write the model as a graphviz digraph to standard output",
	Args:  cobra.NoArgs,
	RunE:  runDot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "Project file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostics")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI styling in output")
	rootCmd.MarkPersistentFlagRequired("project")

	evalCmd.Flags().StringVarP(&evalWorld, "world", "w", "", "World to evaluate at (default: the initial world)")
	evalCmd.Flags().StringVarP(&evalMode, "mode", "m", "down", "Interpretation: up or down")
	validCmd.Flags().StringVarP(&validMode, "mode", "m", "down", "Interpretation: up or down")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(validCmd)
	rootCmd.AddCommand(dotCmd)
}

// parseMode maps a --mode flag value to an interpretation.
func parseMode(s string) (lattice.Interpretation, error) {
	if !sl.OneOf(s, "up", "down") {
		return lattice.Up, fmt.Errorf("unknown interpretation %q (want up or down)", s)
	}
	if s == "up" {
		return lattice.Up, nil
	}
	return lattice.Down, nil
}

// loadPipeline reads the project file and runs every build stage.
func loadPipeline() (*pipeline, error) {
	proj, err := LoadProject(projectPath)
	if err != nil {
		return nil, err
	}
	pipe := newPipeline(proj)
	if err := pipe.run(); err != nil {
		return nil, err
	}
	return pipe, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	pipe, err := loadPipeline()
	if err != nil {
		return err
	}
	nfs, err := pipe.projectFormulas()
	if err != nil {
		return err
	}

	reach := make(map[string]bool)
	for _, id := range pipe.mdl.Reachable() {
		reach[id] = true
	}
	var unreachable []string
	for _, w := range pipe.mdl.Worlds() {
		if !reach[w.ID()] {
			unreachable = append(unreachable, w.ID())
		}
	}
	if len(unreachable) > 0 {
		logger.Warn("worlds unreachable from the initial world",
			zap.Strings("worlds", unreachable))
	}

	fmt.Printf("ok: %d lattices, %d filters, %d components, %d worlds, %d formulas\n",
		len(pipe.lattices), len(pipe.filters), pipe.ml.Len(), len(pipe.mdl.Worlds()), len(nfs))

	utils.OnVerbose(func() {
		fmt.Println(pipe.ml)
		fmt.Println(pipe.mdl)
		for _, nf := range nfs {
			fmt.Printf("%s: %s\n", nf.name, nf.f)
		}
	})
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(evalMode)
	if err != nil {
		return err
	}
	pipe, err := loadPipeline()
	if err != nil {
		return err
	}
	nfs, err := pipe.resolveFormulas(args)
	if err != nil {
		return err
	}

	worldID := evalWorld
	if worldID == "" {
		worldID = pipe.mdl.Initial().ID()
	}
	logger.Debug("evaluating",
		zap.Int("formulas", len(nfs)),
		zap.String("world", worldID),
		zap.Stringer("mode", mode))

	for _, nf := range nfs {
		v, err := interp.Evaluate(nf.f, pipe.mdl, worldID, mode)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", nf.display(), err)
		}
		if nf.name != "" {
			fmt.Printf("%s: %s @ %s = %s\n", nf.name, nf.f, worldID, v)
		} else {
			fmt.Printf("%s @ %s = %s\n", nf.f, worldID, v)
		}
	}
	return nil
}

func runValid(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(validMode)
	if err != nil {
		return err
	}
	pipe, err := loadPipeline()
	if err != nil {
		return err
	}
	nfs, err := pipe.resolveFormulas(args)
	if err != nil {
		return err
	}

	logger.Debug("checking validity",
		zap.Int("formulas", len(nfs)),
		zap.Stringer("mode", mode))

	// The model and formulas are immutable; the checks share them freely.
	var g errgroup.Group
	reports := make([]*interp.Report, len(nfs))
	for idx, nf := range nfs {
		g.Go(func() error {
			rep, err := interp.Validate(nf.f, pipe.mdl, mode)
			if err != nil {
				return fmt.Errorf("validating %s: %w", nf.display(), err)
			}
			reports[idx] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for idx, rep := range reports {
		if nfs[idx].name != "" {
			fmt.Printf("%s: %s\n", nfs[idx].name, rep)
		} else {
			fmt.Println(rep)
		}
	}
	return nil
}

func runDot(cmd *cobra.Command, args []string) error {
	pipe, err := loadPipeline()
	if err != nil {
		return err
	}
	return modelDot(pipe.mdl).WriteDot(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
