// Command mrtacoal schedules, benchmarks, simulates and serves
// coalition schedules for heterogeneous robot fleets.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
