package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cvrank/config"
	"cvrank/internal/adapter/fs"
	"cvrank/internal/adapter/pdf"
	"cvrank/internal/adapter/store"
	"cvrank/internal/domain"
	"cvrank/internal/logger"
	"cvrank/internal/port"
	"cvrank/internal/usecase"
)

var (
	rankTerms      []string
	rankPolicy     string
	rankRequire    []string
	rankFormat     string
	rankOutput     string
	rankNoProgress bool
	rankCache      bool
)

var rankCmd = &cobra.Command{
	Use:   "rank [dir]",
	Short: "Rank the PDF résumés of a directory",
	Long: `Extract the text of every PDF directly inside the directory, count the
configured terms found in each one and print the documents ordered by score.
Documents with equal scores keep the order they were listed in.

Examples:
  cvrank rank ./cvs
  cvrank rank ./cvs -t Skills=python,go -t City=Cluj -p any-category
  cvrank rank ./cvs -p required-categories -r Skills -f yaml -o report.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringArrayVarP(&rankTerms, "term", "t", nil, "category and comma separated terms, e.g. Skills=python,go (repeatable)")
	rankCmd.Flags().StringVarP(&rankPolicy, "policy", "p", "", "exclusion policy: inclusive, any-category, all-categories, required-categories")
	rankCmd.Flags().StringArrayVarP(&rankRequire, "require", "r", nil, "category required by the required-categories policy (repeatable)")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", "", "report format: text, json, yaml (default from config)")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "output file (default: stdout)")
	rankCmd.Flags().BoolVar(&rankNoProgress, "no-progress", false, "disable the progress bar")
	rankCmd.Flags().BoolVar(&rankCache, "cache", false, "cache extracted text in <dir>/.cvrank/text.db")
}

func runRank(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if err := applyRankFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = logger.WithFields(log, zap.String("run_id", uuid.NewString()))

	filter, err := cfg.Filter()
	if err != nil {
		return err
	}

	var extractor port.TextExtractor = pdf.NewExtractor(log)
	if cfg.Cache.Enabled {
		cache, err := store.NewTextCache(cfg.CachePath(dir))
		if err != nil {
			return fmt.Errorf("failed to open text cache: %w", err)
		}
		defer cache.Close()

		cached := store.NewCachedExtractor(cache, extractor, log)
		defer func() {
			hits, misses := cached.Stats()
			log.Info("text cache", zap.Int("hits", hits), zap.Int("misses", misses))
		}()
		extractor = cached
	}

	lister := fs.NewLister(cfg.Scan.Extensions, cfg.Scan.Excludes)
	rankUC := usecase.NewRankUseCase(lister, extractor, log)

	log.Info("starting the scan",
		zap.String("dir", dir),
		zap.Strings("categories", categoryNames(cfg.Terms)),
		zap.String("policy", string(filter.Policy)),
	)

	var progress usecase.ProgressFunc
	if !rankNoProgress {
		progress = newProgress(os.Stderr)
	}

	result, err := rankUC.Scan(dir, cfg.Terms, filter, progress)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if rankOutput != "" {
		f, err := os.Create(rankOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeReport(out, cfg.Output.Format, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if rankOutput != "" {
		log.Info("report written", zap.String("path", rankOutput))
	}
	return nil
}

// applyRankFlags overlays command line flags on the loaded config.
func applyRankFlags(cmd *cobra.Command, cfg *config.Config) error {
	for _, raw := range rankTerms {
		cat, terms, err := parseTermFlag(raw)
		if err != nil {
			return err
		}
		cfg.Terms = cfg.Terms.With(cat, terms)
	}
	if cmd.Flags().Changed("policy") {
		cfg.Ranking.Policy = rankPolicy
	}
	if cmd.Flags().Changed("require") {
		cfg.Ranking.Required = rankRequire
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = rankFormat
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache.Enabled = rankCache
	}
	return nil
}

// parseTermFlag parses "Category=term1,term2". An empty term list is allowed.
func parseTermFlag(raw string) (domain.Category, []string, error) {
	name, list, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, domain.NewValidationError("term", fmt.Sprintf("expected Category=term1,term2, got %q", raw))
	}

	terms := make([]string, 0)
	for _, term := range strings.Split(list, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return domain.Category(name), terms, nil
}

func categoryNames(ts domain.TermSet) []string {
	names := make([]string, 0, len(ts))
	for _, cat := range ts.Categories() {
		names = append(names, string(cat))
	}
	return names
}

// newProgress returns a callback driving a progress bar that is created
// once the total is known.
func newProgress(w io.Writer) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var startTime time.Time

	return func(processed, total int, current string) {
		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Ranking[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(w)
				}),
			)
		}

		bar.Set(processed)

		elapsed := time.Since(startTime)
		rate := float64(processed) / elapsed.Seconds()
		if remaining := total - processed; remaining > 0 && rate > 0 {
			eta := time.Duration(float64(remaining)/rate) * time.Second
			bar.Describe(fmt.Sprintf("[cyan]Ranking[reset] %s ETA: %s", current, formatDuration(eta)))
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
