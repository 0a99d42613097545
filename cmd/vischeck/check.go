package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vischeck/internal/diagfmt"
	"vischeck/internal/driver"
	"vischeck/internal/pipeline"
	"vischeck/internal/privacy"
	"vischeck/internal/project"
	"vischeck/internal/version"
)

const (
	exitViolations = 1
	exitInternal   = 101
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.vsnap|directory>...",
	Short: "Check visibility rules in resolved-program snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json|short|sarif); default from vischeck.toml or pretty")
	checkCmd.Flags().Int("jobs", -1, "max parallel units (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().String("foreign-unions", "", "privacy assumed for unions of other units (assume-public|assume-private)")
	checkCmd.Flags().String("config", "", "path to vischeck.toml (default: search upwards from the working directory)")
	checkCmd.Flags().Bool("with-notes", true, "include notes in output")
}

// checkSettings is the manifest merged with command-line overrides.
type checkSettings struct {
	format    string
	color     bool
	timings   bool
	withNotes bool
	ui        uiMode
	driver    driver.Options
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := resolveCheckSettings(cmd)
	if err != nil {
		return err
	}
	files, err := driver.ListSnapshots(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.vsnap files found in %s", strings.Join(args, ", "))
	}

	var results []driver.UnitResult
	if shouldUseTUI(settings.ui, settings.format, len(files)) {
		results, err = runCheckWithUI(cmd.Context(), files, settings.driver)
	} else {
		results, err = driver.Check(cmd.Context(), files, settings.driver)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := writeResults(out, results, settings); err != nil {
		return err
	}
	if settings.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}

	sum := driver.Summarize(results)
	if settings.format == "pretty" {
		printSummary(cmd.ErrOrStderr(), sum)
	}
	switch {
	case sum.Internal > 0:
		return &exitError{code: exitInternal}
	case sum.Failed > 0:
		return &exitError{code: exitViolations}
	}
	return nil
}

func resolveCheckSettings(cmd *cobra.Command) (checkSettings, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return checkSettings{}, err
	}
	root := cmd.Root().PersistentFlags()
	flags := cmd.Flags()

	if v, _ := root.GetString("color"); v != "" {
		cfg.Output.Color = v
	}
	if v, _ := root.GetInt("max-diagnostics"); v >= 0 {
		cfg.Check.MaxDiagnostics = v
	}
	if v, _ := flags.GetString("format"); v != "" {
		cfg.Output.Format = v
	}
	if v, _ := flags.GetInt("jobs"); v >= 0 {
		cfg.Check.Jobs = v
	}
	if v, _ := flags.GetString("foreign-unions"); v != "" {
		cfg.Check.ForeignUnions = v
	}

	s := checkSettings{format: strings.ToLower(cfg.Output.Format)}
	switch s.format {
	case "pretty", "json", "short", "sarif":
	default:
		return s, fmt.Errorf("unknown format: %s", cfg.Output.Format)
	}
	if s.color, err = useColor(cfg.Output.Color); err != nil {
		return s, err
	}
	policy, err := privacy.ParseForeignUnionPolicy(cfg.Check.ForeignUnions)
	if err != nil {
		return s, err
	}
	uiFlag, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return s, err
	}
	s.timings, _ = root.GetBool("timings")
	s.withNotes, _ = flags.GetBool("with-notes")
	s.driver = driver.Options{
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Jobs:           cfg.Check.Jobs,
		ForeignUnions:  policy,
	}
	return s, nil
}

// loadConfig reads --config, or the manifest found above the working
// directory, or falls back to the defaults.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		m   *project.Manifest
		err error
	)
	if path != "" {
		m, err = project.LoadFile(path)
	} else {
		m, err = project.Load(".")
	}
	if err != nil {
		return project.Config{}, err
	}
	if m == nil {
		return project.Defaults(), nil
	}
	return m.Config, nil
}

func writeResults(out io.Writer, results []driver.UnitResult, s checkSettings) error {
	units := make([]diagfmt.Unit, 0, len(results))
	for i := range results {
		units = append(units, toFormatUnit(&results[i]))
	}
	switch s.format {
	case "pretty":
		opts := diagfmt.PrettyOpts{Color: s.color, ShowNotes: s.withNotes}
		for _, u := range units {
			diagfmt.Pretty(out, u, opts)
		}
	case "short":
		for _, u := range units {
			diagfmt.Short(out, u)
		}
	case "json":
		return diagfmt.JSON(out, units, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: s.withNotes})
	case "sarif":
		return diagfmt.Sarif(out, units, diagfmt.SarifRunMeta{
			ToolName:       "vischeck",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	return nil
}

func toFormatUnit(r *driver.UnitResult) diagfmt.Unit {
	u := diagfmt.Unit{
		Path:  r.Path,
		Name:  r.Unit,
		Bag:   r.Bag,
		Files: r.Files,
	}
	if !r.Digest.IsZero() {
		u.Digest = r.Digest.String()
	}
	if r.Internal != nil {
		u.Internal = internalText(r)
	}
	return u
}

// internalText places the internal error in source when its span resolves.
func internalText(r *driver.UnitResult) string {
	ice := r.Internal
	if r.Files == nil {
		return ice.Msg
	}
	f := r.Files.Get(ice.Span.File)
	if f == nil || (ice.Span.Empty() && ice.Span.Start == 0) {
		return ice.Msg
	}
	start, _ := r.Files.Resolve(ice.Span)
	return fmt.Sprintf("%s (at %s:%d:%d)", ice.Msg, f.Path, start.Line, start.Col)
}

func printTimings(w io.Writer, results []driver.UnitResult) {
	for i := range results {
		r := &results[i]
		fmt.Fprintf(w, "%s: load %.1f ms, privacy %.1f ms\n", r.Path,
			toMillis(r.Timings.Duration(pipeline.StageLoad)),
			toMillis(r.Timings.Duration(pipeline.StagePrivacy)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func printSummary(w io.Writer, sum driver.Summary) {
	if sum.Failed == 0 {
		fmt.Fprintf(w, "checked %d %s: no privacy errors\n", sum.Units, plural(sum.Units, "unit"))
		return
	}
	fmt.Fprintf(w, "checked %d %s: %d %s", sum.Units, plural(sum.Units, "unit"), sum.Errors, plural(sum.Errors, "error"))
	if sum.Internal > 0 {
		fmt.Fprintf(w, ", %d internal compiler %s", sum.Internal, plural(sum.Internal, "error"))
	}
	fmt.Fprintln(w)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
