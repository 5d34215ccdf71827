// Command miner runs the quantum-gravity mining kernel against a single
// block and prints a human-readable result. Flag parsing, logging, and
// the optional metrics exporter live here, at the CLI edge — the core
// kernel package takes no dependency on any of it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"

	"github.com/chimera-pool/quantum-gravity-miner/internal/config"
	"github.com/chimera-pool/quantum-gravity-miner/internal/kernel"
	"github.com/chimera-pool/quantum-gravity-miner/internal/metrics"
)

func main() {
	cfg := struct {
		block       string
		difficulty  string
		maxAttempts uint64
		nNodes      uint64
		qgThreshold float64
		parallel    bool
		stats       bool
		metricsAddr string
		verbose     bool
	}{
		block:       config.GetEnv("QGMINER_BLOCK", "genesis"),
		difficulty:  config.GetEnv("QGMINER_DIFFICULTY", "50000"),
		maxAttempts: uint64(config.GetEnvInt64("QGMINER_MAX_ATTEMPTS", 1_000_000)),
		nNodes:      uint64(config.GetEnvInt64("QGMINER_N_NODES", 1)),
		qgThreshold: config.GetEnvFloat64("QGMINER_QG_THRESHOLD", 0.1),
		verbose:     config.GetEnvBool("QGMINER_VERBOSE", false),
	}

	flag.StringVar(&cfg.block, "block", cfg.block, "block data to mine against")
	flag.StringVar(&cfg.difficulty, "difficulty", cfg.difficulty, "difficulty target, as a base-10 integer")
	flag.Uint64Var(&cfg.maxAttempts, "max-attempts", cfg.maxAttempts, "maximum nonces to try before giving up")
	flag.Uint64Var(&cfg.nNodes, "n-nodes", cfg.nNodes, "network node count for the consciousness gate")
	flag.Float64Var(&cfg.qgThreshold, "qg-threshold", cfg.qgThreshold, "minimum qg_score to pass the curvature gate")
	flag.BoolVar(&cfg.parallel, "parallel", false, "shard the nonce search across GOMAXPROCS workers")
	flag.BoolVar(&cfg.stats, "stats", false, "print the per-gate rejection breakdown")
	flag.StringVar(&cfg.metricsAddr, "metrics-addr", "", "if set, serve Prometheus /metrics on this address")
	flag.BoolVar(&cfg.verbose, "verbose", cfg.verbose, "enable verbose logging")
	flag.BoolVar(&cfg.verbose, "v", cfg.verbose, "shorthand for --verbose")
	flag.Parse()

	difficulty, ok := new(big.Int).SetString(cfg.difficulty, 10)
	if !ok {
		log.Fatalf("invalid --difficulty value: %q", cfg.difficulty)
	}

	if cfg.verbose {
		log.Printf("starting mining run: block=%q difficulty=%s n_nodes=%d max_attempts=%d qg_threshold=%.3f parallel=%v",
			cfg.block, difficulty, cfg.nNodes, cfg.maxAttempts, cfg.qgThreshold, cfg.parallel)
	}

	kernelCfg := kernel.DefaultConfig()
	kernelCfg.QGThreshold = cfg.qgThreshold
	k := kernel.New(kernelCfg)

	var recorder *metrics.Recorder
	if cfg.metricsAddr != "" {
		recorder = metrics.NewRecorder()
		k.SetRecorder(recorder)
		serveMetrics(cfg.metricsAddr, recorder, cfg.verbose)
	}

	var (
		result   kernel.Result
		runStats kernel.Stats
	)
	switch {
	case cfg.parallel && cfg.stats:
		result, runStats = k.MineParallelWithStats(context.Background(), cfg.block, difficulty, cfg.nNodes, cfg.maxAttempts)
	case cfg.parallel:
		result = k.MineParallel(context.Background(), cfg.block, difficulty, cfg.nNodes, cfg.maxAttempts)
	case cfg.stats:
		result, runStats = k.MineWithStats(cfg.block, difficulty, cfg.nNodes, cfg.maxAttempts)
	default:
		result = k.Mine(cfg.block, difficulty, cfg.nNodes, cfg.maxAttempts)
	}

	printResult(result)
	if cfg.stats {
		printStats(runStats)
	}

	os.Exit(0)
}

func printResult(result kernel.Result) {
	if result.Nonce == nil {
		fmt.Printf("no valid nonce found after %d attempts\n", result.Attempts)
		return
	}
	fmt.Printf("found nonce %d after %d attempts\n", *result.Nonce, result.Attempts)
	fmt.Printf("  block_hash: %s\n", *result.BlockHash)
	fmt.Printf("  phi_total:  %.6f\n", result.PhiTotal)
	fmt.Printf("  qg_score:   %.6f\n", result.QGScore)
	fmt.Printf("  holo_score: %.6f\n", result.HoloScore)
	fmt.Printf("  fano_score: %.6f\n", result.FanoScore)
	fmt.Printf("  phi_score:  %.2f\n", result.PhiScore)
}

func printStats(stats kernel.Stats) {
	fmt.Printf("  --- gate rejection breakdown ---\n")
	fmt.Printf("  total_attempts:         %d\n", stats.TotalAttempts)
	fmt.Printf("  difficulty_rejected:    %d\n", stats.DifficultyRejected)
	fmt.Printf("  consciousness_rejected: %d\n", stats.ConsciousnessRejected)
	fmt.Printf("  qg_curvature_rejected:  %d\n", stats.QGCurvatureRejected)
	fmt.Printf("  accepted:               %d\n", stats.Accepted)
}

func serveMetrics(addr string, recorder *metrics.Recorder, verbose bool) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	go func() {
		if verbose {
			log.Printf("serving Prometheus metrics on %s/metrics", addr)
		}
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics server error: %v", err)
		}
	}()
}
