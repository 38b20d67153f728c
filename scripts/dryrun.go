//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tesgen/tes/pkg/generator"
	"github.com/tesgen/tes/pkg/runner"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/dryrun.go <path>\n")
		os.Exit(1)
	}

	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	r := runner.New(generator.NewFakeClient(), runner.WithDryRun(true))
	summary, err := r.RunDir(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"visited":     summary.Visited,
		"planned":     summary.Planned,
		"skipped":     summary.Skipped,
		"unsupported": summary.Unsupported,
		"failed":      summary.Failed,
		"duration":    summary.Duration.String(),
		"outcomes":    countOutcomes(summary),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func countOutcomes(summary *runner.Summary) map[string]int {
	counts := make(map[string]int)
	for _, file := range summary.Files {
		counts[file.Outcome.String()]++
	}
	return counts
}
