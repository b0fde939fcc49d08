package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/bundlefile"
	"github.com/albertocavalcante/go-artpack/config"
	"github.com/albertocavalcante/go-artpack/pages"
)

// errPlanOutOfDate is returned by plan --check when the plan file no
// longer matches the project.
var errPlanOutOfDate = errors.New("plan is out of date")

func newEntriesCommand(a *app) *cobra.Command {
	var keepQuery, hot, asJSON bool

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List the entries selected by the module filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := a.resolver(artpack.WithKeepQuery(keepQuery))
			if err != nil {
				return err
			}

			entries := r.Resolve(cfg.Manifest, cfg.Modules)
			if entries.Len() == 0 {
				noticeColor.Fprintln(a.stdout, noModulesMessage)
				return nil
			}

			// The polyfill is labelled while it still leads every entry.
			if !asJSON {
				entries = artpack.LabelPolyfill(entries, r.PolyfillPath(), polyfillLabel)
			}
			s := cfg.BuildSettings()
			if hot && !s.Mode.IsProduction() {
				entries = artpack.AttachDevServerScripts(entries, s.DevHost, s.DevPort)
			}
			if asJSON {
				return writeJSON(a.stdout, entries)
			}
			printEntries(a.stdout, entries, polyfillLabel)
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepQuery, "keep-query", false, "keep the ?query suffix of entry keys")
	cmd.Flags().BoolVar(&hot, "hot", false, "prepend the dev server scripts in development")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the entry map as JSON")
	return cmd
}

func newOutputCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "output",
		Short: "Print the bundler output settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := artpack.DeriveOutput(cfg.BuildSettings())
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, out)
		},
	}
}

func newPlanCommand(a *app) *cobra.Command {
	var (
		outFile string
		noPages bool
		check   bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Write the build plan handed to the bundler",
		Long: "plan resolves entries, output settings and HTML pages and writes them as " +
			bundlefile.FileName + ". Development plans include the dev server scripts.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			plan, err := a.buildPlan(cfg, !noPages)
			if err != nil {
				return err
			}
			if check {
				return a.checkPlan(planPath(cfg, outFile), plan)
			}

			if outFile == "" || outFile == "-" {
				_, err := plan.WriteTo(a.stdout)
				return err
			}
			if !filepath.IsAbs(outFile) {
				outFile = filepath.Join(cfg.WorkDir, outFile)
			}
			if err := plan.WriteFile(outFile); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}
			fmt.Fprintf(a.stdout, "Wrote %d entries to %s\n", plan.Entries.Len(), outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "plan file, relative to --cwd (default: stdout)")
	cmd.Flags().BoolVar(&noPages, "no-pages", false, "skip HTML page planning")
	cmd.Flags().BoolVar(&check, "check", false, "compare the plan file with a fresh plan instead of writing it")
	return cmd
}

// planPath returns the plan file --check reads: --output when it names a
// file, bundlefile.FileName in the project otherwise.
func planPath(cfg *config.Config, outFile string) string {
	if outFile == "" || outFile == "-" {
		return bundlefile.DefaultPath(cfg.WorkDir)
	}
	if !filepath.IsAbs(outFile) {
		return filepath.Join(cfg.WorkDir, outFile)
	}
	return outFile
}

// checkPlan reports how the plan file at path differs from fresh and fails
// with errPlanOutOfDate when it does.
func (a *app) checkPlan(path string, fresh *bundlefile.Plan) error {
	old, err := bundlefile.ReadFile(path)
	if err != nil {
		return fmt.Errorf("check plan: %w", err)
	}
	if !old.IsCompatible() {
		warnColor.Fprintf(a.stdout, "%s has plan version %d, want %d\n", path, old.Version, bundlefile.CurrentVersion)
		return fmt.Errorf("%w: %s", errPlanOutOfDate, path)
	}
	stale, err := old.Stale()
	if err != nil {
		return err
	}
	d := bundlefile.Compare(old, fresh)
	if len(stale) == 0 && d.IsEmpty() {
		fmt.Fprintf(a.stdout, "%s is up to date\n", path)
		return nil
	}
	printPlanDiff(a.stdout, d, stale)
	return fmt.Errorf("%w: %s", errPlanOutOfDate, path)
}

func (a *app) buildPlan(cfg *config.Config, withPages bool) (*bundlefile.Plan, error) {
	s := cfg.BuildSettings()
	entries, err := artpack.ResolveDevEntries(cfg.Manifest, cfg.Modules, s, a.resolverOptions()...)
	if err != nil {
		return nil, err
	}
	if entries.Len() == 0 {
		a.logger.Warn(noModulesMessage)
	}
	out, err := artpack.DeriveOutput(s)
	if err != nil {
		return nil, err
	}

	plan := bundlefile.New()
	plan.Mode = s.Mode
	plan.Tier = s.Tier
	plan.Filters = append(plan.Filters, cfg.Modules...)
	plan.Polyfill = artpack.DefaultPolyfillPath
	plan.Entries = entries
	plan.Output = &out

	if withPages {
		if plan.Pages, err = a.planPages(cfg); err != nil {
			return nil, err
		}
	}
	if err := plan.RecordSources(cfg.Sources()...); err != nil {
		return nil, err
	}
	return plan, nil
}

// planPages plans the HTML page of every selected entry. Page options
// live in the entry key query, so keys are resolved with it kept.
func (a *app) planPages(cfg *config.Config) ([]pages.Page, error) {
	r, err := a.resolver(artpack.WithKeepQuery(true))
	if err != nil {
		return nil, err
	}
	keys := r.Resolve(cfg.Manifest, cfg.Modules).Names()
	planner := pages.Planner{
		WorkDir:            cfg.WorkDir,
		ProjectVirtualPath: cfg.ProjectVirtualPath,
		Settings:           cfg.BuildSettings(),
	}
	return planner.Plan(keys)
}

func newPagesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "Print the HTML page plan of every selected entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if config.IsWellStructuredClient(cfg.ClientDir()) {
				a.logger.Info("miniprogram client detected; pages are produced by the miniprogram build", "dir", cfg.ClientDir())
			}
			plan, err := a.planPages(cfg)
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, plan)
		},
	}
}
