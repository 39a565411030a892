// Command mrtacoalvis replays a coalition schedule in a Gio window:
// robots travel between tasks on the 2D workspace while a gantt panel
// tracks each timeline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/joho/godotenv"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/dataset"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/gen"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis"
)

func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data", defaultDataDir(), "Dataset directory (or MRTACOAL_DATA env)")
	id := flag.Int("id", -1, "Benchmark instance id to replay")
	scheduler := flag.String("scheduler", "", "Scheduler to replay (default coalition-greedy)")
	seed := flag.Int64("seed", 1, "Seed for the generated fallback instance")
	flag.Parse()

	inst, err := loadInstance(*dataDir, *id, *seed, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	application, err := vis.NewApp(inst, *scheduler)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Coalition Schedule Visualizer"),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loadInstance picks the replay instance: an explicit problem file, a
// numbered benchmark instance, or a small generated one when neither
// is given.
func loadInstance(dataDir string, id int, seed int64, path string) (*core.Instance, error) {
	switch {
	case path != "":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var data core.ProblemData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return core.NewInstance(&data)
	case id >= 0:
		loader, err := dataset.NewLoader(dataDir, nil)
		if err != nil {
			return nil, err
		}
		return loader.LoadInstance(id)
	default:
		p := gen.DefaultParams()
		p.Seed = seed
		return core.NewInstance(gen.Generate(p))
	}
}

func defaultDataDir() string {
	if d := os.Getenv("MRTACOAL_DATA"); d != "" {
		return d
	}
	return "data/benchmark"
}
