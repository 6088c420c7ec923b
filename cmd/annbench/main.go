// Command annbench builds an hnsw.Index over a base vector file and
// reports recall@k against a query file, optionally throttled to a fixed
// QPS; per-query latency is recorded in its Prometheus metrics. It is the host harness around the core
// package: file parsing, flag handling, and progress reporting all live
// here rather than in pkg/hnsw.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/arvindrs/hnswann/internal/eval"
	"github.com/arvindrs/hnswann/internal/loader"
	"github.com/arvindrs/hnswann/pkg/config"
	"github.com/arvindrs/hnswann/pkg/hnsw"
	"github.com/arvindrs/hnswann/pkg/observability"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version and exit")
		basePath    = flag.String("base", "", "path to base vector file")
		queryPath   = flag.String("query", "", "path to query vector file")
		gtPath      = flag.String("ground-truth", "", "path to ground-truth file (optional; computed via brute force if omitted)")
		workers     = flag.Int("workers", 0, "build parallelism (0 = GOMAXPROCS)")
		qps         = flag.Int("qps", 0, "throttle query issuance to this rate (0 = unthrottled)")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		m           = flag.Int("m", 0, "override the graph degree hyperparameter M (0 = package default)")
		efConstr    = flag.Int("ef-construction", 0, "override the build-time beam width (0 = package default)")
		efSearch    = flag.Int("ef-search", 0, "override the query-time beam width (0 = package default)")
		k           = flag.Int("k", 0, "override the number of neighbors returned per query (0 = package default)")
		verify      = flag.Bool("verify", false, "verify recall against the brute-force oracle instead of --ground-truth")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("annbench v%s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	logger := observability.NewLogger(observability.ParseLogLevel(*logLevel), os.Stdout)
	metrics := observability.NewMetrics()

	cfg := config.Default()
	cfg.BasePath = *basePath
	cfg.QueryPath = *queryPath
	cfg.GroundTruthPath = *gtPath
	cfg.Workers = *workers
	cfg.QPS = *qps
	cfg.M = *m
	cfg.EfConstruction = *efConstr
	cfg.EfSearch = *efSearch
	cfg.K = *k

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	base, err := loader.Load(cfg.BasePath)
	if err != nil {
		log.Fatalf("loading base vectors: %v", err)
	}
	queries, err := loader.Load(cfg.QueryPath)
	if err != nil {
		log.Fatalf("loading query vectors: %v", err)
	}
	if queries.Dim != base.Dim {
		log.Fatalf("query dimension %d does not match base dimension %d", queries.Dim, base.Dim)
	}

	var groundTruth [][]int
	if cfg.GroundTruthPath != "" {
		groundTruth, err = loader.LoadGroundTruth(cfg.GroundTruthPath)
		if err != nil {
			log.Fatalf("loading ground truth: %v", err)
		}
	}

	logger.Info("loaded vectors", map[string]interface{}{
		"base_n":  base.N,
		"query_n": queries.N,
		"dim":     base.Dim,
	})

	idx := hnsw.New()
	idx.Workers = cfg.Workers
	idx.M = cfg.M
	idx.EfConstruction = cfg.EfConstruction
	idx.EfSearch = cfg.EfSearch
	idx.K = cfg.K

	var buildErr error
	buildDuration := timeIt(func() {
		buildErr = idx.Build(base.Dim, base.Flat)
	})
	if buildErr != nil {
		log.Fatalf("build: %v", buildErr)
	}
	metrics.RecordBuild(buildDuration, idx.QuantizationEnabled())
	logger.Info("build complete", map[string]interface{}{"duration": buildDuration})

	var limiter *rate.Limiter
	if cfg.QPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.QPS), 1)
	}

	outK := 10
	if cfg.K > 0 {
		outK = cfg.K
	}
	out := make([]uint32, outK)
	approx := make([][]uint32, queries.N)
	truth := make([][]uint32, queries.N)

	// --verify forces every query's ground truth through the brute-force
	// oracle, even when --ground-truth was supplied, so a provided file can
	// be checked against the true nearest neighbors rather than trusted.
	useGroundTruth := groundTruth != nil && !*verify

	ctx := context.Background()
	for q := 0; q < queries.N; q++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				log.Fatalf("rate limiter: %v", err)
			}
		}

		query := queries.Flat[q*queries.Dim : (q+1)*queries.Dim]

		start := time.Now()
		idx.Search(query, out)
		elapsed := time.Since(start)
		metrics.RecordQuery(elapsed, outK)

		approx[q] = append([]uint32(nil), out...)

		if useGroundTruth && q < len(groundTruth) {
			row := make([]uint32, len(groundTruth[q]))
			for i, id := range groundTruth[q] {
				row[i] = uint32(id)
			}
			truth[q] = row
		} else {
			truth[q] = eval.BruteForce(base.Flat, base.Dim, query, outK)
		}
	}

	recall := eval.MeanRecallAtK(approx, truth, outK)
	metrics.RecordRecall(recall)

	logger.Info("benchmark complete", map[string]interface{}{
		"queries": queries.N,
		"k":       outK,
		"recall":  recall,
	})
	fmt.Printf("recall@%d: %.4f over %d queries\n", outK, recall, queries.N)
}

func timeIt(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}
