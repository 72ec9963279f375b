package chash_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// BenchmarkMetrics is one benchmark run as written to benchmark_history
type BenchmarkMetrics struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Operations  int                `json:"operations"`
	NsPerOp     float64            `json:"ns_per_op"`
	BytesPerOp  int                `json:"bytes_per_op,omitempty"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BenchmarkSummary is the file layout of benchmark_history/latest.json
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// getMemoryUsage formats heap usage for progress logs
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%.1fMB Sys=%.1fMB",
		float64(m.Alloc)/1024/1024,
		float64(m.Sys)/1024/1024)
}

// getMemoryStats returns the current memory stats as a map
func getMemoryStats() map[string]float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]float64{
		"alloc_mb": float64(m.Alloc) / (1024 * 1024),
		"sys_mb":   float64(m.Sys) / (1024 * 1024),
	}
}

// gitInfo reads the current branch and short commit ID straight from .git,
// falling back to "dev" and "local"
func gitInfo(repoRoot string) (branch, commitID string) {
	branch, commitID = "dev", "local"

	head, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return branch, commitID
	}
	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		// Detached HEAD holds the commit itself
		if len(ref) >= 8 {
			commitID = ref[:8]
		}
		return branch, commitID
	}

	ref = strings.TrimPrefix(ref, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")
	if data, err := os.ReadFile(filepath.Join(repoRoot, ".git", ref)); err == nil {
		commitID = strings.TrimSpace(string(data))
		if len(commitID) >= 8 {
			commitID = commitID[:8]
		}
	}
	return branch, commitID
}

// saveBenchmarkResult appends a benchmark result to
// benchmark_history/<resultsFile> in the repository root
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Benchmarks run from bench/, one level below the root
	repoRoot := filepath.Dir(currentDir)
	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	branch, commitID := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existing, err := os.ReadFile(latestFile); err == nil {
		var existingSummary BenchmarkSummary
		if err := json.Unmarshal(existing, &existingSummary); err == nil {
			summary.Results = append(existingSummary.Results, metrics)
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := os.WriteFile(latestFile, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	log.WithField("file", latestFile).Info("Benchmark results saved")
	return nil
}
