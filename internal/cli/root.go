// Package cli is the wordcliques command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wisepythagoras/wordcliques/internal/cache"
	"github.com/wisepythagoras/wordcliques/internal/clique"
	"github.com/wisepythagoras/wordcliques/internal/config"
	apperr "github.com/wisepythagoras/wordcliques/internal/errors"
	"github.com/wisepythagoras/wordcliques/internal/logger"
	"github.com/wisepythagoras/wordcliques/internal/metrics"
	"github.com/wisepythagoras/wordcliques/internal/pipeline"
	"github.com/wisepythagoras/wordcliques/internal/store"
	"github.com/wisepythagoras/wordcliques/internal/wordlist"
)

type flags struct {
	configPath  string
	wordFile    string
	outputFile  string
	outputList  bool
	verbose     bool
	workers     int
	mode        string
	metricsFile string
	dbPath      string
	cacheAddr   string
}

// NewRootCmd builds the wordcliques command. Logs go to the command's error
// stream so results can be written to stdout.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "wordcliques",
		Short: "Find five five-letter words that use 25 distinct letters",
		Long: `wordcliques reads a word list, keeps the five-letter words without repeated
letters, groups anagrams, and writes every combination of five words whose
letters are all distinct, one combination per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file")
	fs.StringVarP(&f.wordFile, "word-file", "w", "", "the path to the word file (- for stdin)")
	fs.StringVarP(&f.outputFile, "output-file", "o", "", "where to write results (- for stdout, default results.txt)")
	fs.BoolVar(&f.outputList, "output-list", false, "output the list of words without repeating letters and exit")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print out all messages")
	fs.IntVar(&f.workers, "workers", 0, "search workers (default: number of CPUs)")
	fs.StringVar(&f.mode, "mode", "", "search mode: exhaustive or ordered")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	fs.StringVar(&f.dbPath, "db", "", "record the run in this SQLite database")
	fs.StringVar(&f.cacheAddr, "cache-addr", "", "Redis address of the result cache")

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("word-file") {
		cfg.Input.WordFile = f.wordFile
	}

	if fs.Changed("output-file") {
		cfg.Output.File = f.outputFile
	}

	if fs.Changed("output-list") {
		cfg.Output.ListOnly = f.outputList
	}

	if fs.Changed("workers") {
		cfg.Search.Workers = f.workers
	}

	if fs.Changed("mode") {
		cfg.Search.Mode = clique.Mode(f.mode)
	}

	if fs.Changed("metrics-file") {
		cfg.Metrics.File = f.metricsFile
	}

	if fs.Changed("db") {
		cfg.Store.Path = f.dbPath
	}

	if fs.Changed("cache-addr") {
		cfg.Cache.Addr = f.cacheAddr
		cfg.Cache.Enabled = f.cacheAddr != ""
	}

	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	log.Info("reading words", "file", cfg.Input.WordFile)

	words, err := readWords(cmd.InOrStdin(), cfg.Input.WordFile)
	if err != nil {
		return apperr.Newf(apperr.ErrIO, apperr.ExitFailure, "reading word file %s: %v", cfg.Input.WordFile, err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	options := []pipeline.Option{
		pipeline.WithLogger(logger.WithComponent("pipeline")),
		pipeline.WithMetrics(m),
	}

	if cfg.Cache.Enabled {
		rc, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			log.Warn("result cache unavailable, continuing without it", "addr", cfg.Cache.Addr, "error", err)
		} else {
			defer rc.Close()
			options = append(options, pipeline.WithCache(rc))
		}
	}

	p := pipeline.New(pipeline.Options{
		Workers: cfg.Search.Workers,
		Mode:    cfg.Search.Mode,
	}, options...)

	if cfg.Output.ListOnly {
		return writeLines(cmd.OutOrStdout(), cfg.Output.File, p.WordGroups(words), log)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()

	res, err := p.Run(ctx, words)
	if err != nil {
		return err
	}

	if err := writeLines(cmd.OutOrStdout(), cfg.Output.File, res.Lines, log); err != nil {
		return err
	}

	if cfg.Store.Path != "" {
		if err := saveRun(ctx, cfg, res, started, log); err != nil {
			return err
		}
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File, reg); err != nil {
			return apperr.New(apperr.ErrIO, apperr.ExitFailure, err.Error())
		}

		log.Debug("metrics written", "file", cfg.Metrics.File)
	}

	log.Info("execution time", "duration", time.Since(started), "cliques", len(res.Lines))

	return nil
}

func readWords(stdin io.Reader, path string) ([]string, error) {
	if path == wordlist.Stdio {
		return wordlist.Read(stdin)
	}

	return wordlist.ReadFile(path)
}

func writeLines(stdout io.Writer, path string, lines []string, log *slog.Logger) error {
	var err error
	if path == wordlist.Stdio {
		err = wordlist.Write(stdout, lines)
	} else {
		err = wordlist.WriteFile(path, lines)
	}

	if err != nil {
		return apperr.Newf(apperr.ErrIO, apperr.ExitFailure, "writing results to %s: %v", path, err)
	}

	log.Info("results written", "file", path, "lines", len(lines))

	return nil
}

func saveRun(ctx context.Context, cfg *config.Config, res *pipeline.Result, started time.Time, log *slog.Logger) error {
	s, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		return apperr.New(apperr.ErrIO, apperr.ExitFailure, err.Error())
	}
	defer s.Close()

	id, err := s.SaveRun(ctx, store.Run{
		StartedAt:  started,
		WordFile:   cfg.Input.WordFile,
		Mode:       string(cfg.Search.Mode),
		Words:      res.Stats.Words,
		LetterSets: res.Stats.LetterSets,
		Edges:      res.Stats.Edges,
		Duration:   time.Since(started),
	}, res.Lines)
	if err != nil {
		return apperr.New(apperr.ErrIO, apperr.ExitFailure, fmt.Sprintf("recording run: %v", err))
	}

	log.Info("run recorded", "db", cfg.Store.Path, "run_id", id)

	return nil
}
