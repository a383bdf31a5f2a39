// Command shuddhi corrects noisy ASR transcripts: it reads transcript lines,
// runs the normalization pipeline over each one, and prints the candidate
// corrections for an external scorer to rank.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/nairkartik/shuddhi/internal/candidate"
	"github.com/nairkartik/shuddhi/internal/config"
	"github.com/nairkartik/shuddhi/internal/fuzzy"
	"github.com/nairkartik/shuddhi/internal/lexicon"
	"github.com/nairkartik/shuddhi/internal/observe"
	"github.com/nairkartik/shuddhi/internal/rules"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	inputPath := flag.String("input", "", "transcript file: plain text or JSONL with a \"text\" field (default: stdin)")
	lexiconPath := flag.String("lexicon", "", "plain-text lexicon file, one name per line (overrides config)")
	benchRuns := flag.Int("bench", 0, "run N timed generations over the input and report latency instead of candidates")
	warmup := flag.Int("warmup", 10, "untimed warmup iterations before -bench measurements")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg := &config.Config{}
	if loaded, err := config.Load(*configPath); err == nil {
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "shuddhi: %v\n", err)
		return 1
	}
	if *lexiconPath != "" {
		cfg.Lexicon = config.LexiconConfig{Path: *lexiconPath}
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	ctx := context.Background()

	// ── Metrics ───────────────────────────────────────────────────────────────
	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "shuddhi"})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		slog.Error("failed to create metric instruments", "err", err)
		return 1
	}

	if addr := cfg.Server.ListenAddr; addr != "" {
		go serveMetrics(addr)
	}

	// ── Lexicon ───────────────────────────────────────────────────────────────
	names, err := loadLexicon(ctx, cfg.Lexicon)
	if err != nil {
		slog.Error("failed to load lexicon", "err", err)
		return 1
	}
	metrics.LexiconSize.Add(ctx, int64(len(names)))
	slog.Info("lexicon loaded", "entries", len(names))

	// ── Pipeline ──────────────────────────────────────────────────────────────
	ruleOpts := []rules.Option{rules.WithMatcher(fuzzy.NewRatioMatcher())}
	if cfg.Pipeline.NameThreshold > 0 {
		ruleOpts = append(ruleOpts, rules.WithNameThreshold(cfg.Pipeline.NameThreshold))
	}
	rs := rules.NewSet(cfg.Pipeline.Profile, ruleOpts...)

	genOpts := []candidate.Option{candidate.WithMetrics(metrics)}
	if cfg.Pipeline.MaxCandidates > 0 {
		genOpts = append(genOpts, candidate.WithMaxCandidates(cfg.Pipeline.MaxCandidates))
	}
	gen := candidate.NewGenerator(rs, names, genOpts...)

	// ── Input ─────────────────────────────────────────────────────────────────
	texts, err := readTranscripts(*inputPath)
	if err != nil {
		slog.Error("failed to read input", "err", err)
		return 1
	}
	if len(texts) == 0 {
		slog.Warn("no input transcripts")
		return 0
	}

	if *benchRuns > 0 {
		runBench(gen, texts, *benchRuns, *warmup)
		return 0
	}

	if err := processAll(ctx, gen, texts); err != nil {
		slog.Error("processing failed", "err", err)
		return 1
	}
	return 0
}

// result pairs one input line with its candidate list for JSON output.
type result struct {
	Text       string   `json:"text"`
	Candidates []string `json:"candidates"`
}

// processAll generates candidates for every transcript in parallel —
// generation is stateless per call and the lexicon is read-only, so calls
// need no coordination — and prints results in input order.
func processAll(ctx context.Context, gen *candidate.Generator, texts []string) error {
	results := make([]result, len(texts))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		g.Go(func() error {
			results[i] = result{Text: text, Candidates: gen.Generate(text)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}
	return nil
}

// runBench measures generation latency: warmup iterations on the first
// transcript, then runs timed iterations cycling through the input.
func runBench(gen *candidate.Generator, texts []string, runs, warmup int) {
	for range warmup {
		gen.Generate(texts[0])
	}

	times := make([]float64, 0, runs)
	for i := range runs {
		t0 := time.Now()
		gen.Generate(texts[i%len(texts)])
		times = append(times, float64(time.Since(t0).Microseconds())/1000)
	}
	sort.Float64s(times)

	p50 := times[len(times)/2]
	p95idx := int(float64(len(times))*0.95) - 1
	if p95idx < 0 {
		p95idx = 0
	}
	p95 := times[p95idx]
	fmt.Printf("p50_ms=%.3f p95_ms=%.3f (runs=%d)\n", p50, p95, runs)
}

// readTranscripts loads input lines from path, or stdin when path is empty.
// Lines that look like JSON objects are parsed as {"text": ...}; anything
// else is taken verbatim. Blank lines are skipped.
func readTranscripts(path string) ([]string, error) {
	var r *os.File
	if path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var texts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			var row struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal([]byte(line), &row); err != nil {
				return nil, fmt.Errorf("parse jsonl line: %w", err)
			}
			texts = append(texts, row.Text)
			continue
		}
		texts = append(texts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return texts, nil
}

// loadLexicon picks the lexicon source from config: Postgres when a DSN is
// set, otherwise a plain-text file, otherwise an empty lexicon.
func loadLexicon(ctx context.Context, cfg config.LexiconConfig) ([]string, error) {
	switch {
	case cfg.PostgresDSN != "":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect lexicon database: %w", err)
		}
		defer pool.Close()
		src := lexicon.NewPostgresSource(pool)
		if err := src.Migrate(ctx); err != nil {
			return nil, err
		}
		return src.Names(ctx)
	case cfg.Path != "":
		return lexicon.FileSource{Path: cfg.Path}.Names(ctx)
	default:
		return nil, nil
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Warn("metrics server stopped", "err", err)
	}
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
