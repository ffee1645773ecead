package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	"github.com/lintang-b-s/floodnav/pkg/engine"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"github.com/lintang-b-s/floodnav/pkg/logger"
	"go.uber.org/zap"
)

var (
	topologyPath    = flag.String("topology", "./data/junctions.json", "intersection table")
	roadLengthsPath = flag.String("lengths", "./data/road_lengths.json", "road length table")
	start           = flag.String("start", "", "start intersection id")
	end             = flag.String("end", "", "end intersection id")
	policyName      = flag.String("policy", "optimal", "routing policy: optimal or safe")
	levelsPath      = flag.String("levels", "", "optional flood level csv export")
)

// one shot route query, prints the road sequence
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	policy, err := costfunction.ParsePolicy(*policyName)
	if err != nil {
		logger.Fatal("invalid policy", zap.Error(err))
	}

	e, err := engine.NewEngine(*topologyPath, *roadLengthsPath, logger)
	if err != nil {
		logger.Fatal("failed to load network", zap.Error(err))
	}

	if *levelsPath != "" {
		f, err := os.Open(*levelsPath)
		if err != nil {
			logger.Fatal("failed to open flood levels", zap.Error(err))
		}
		readings, err := flood.ParseCSV(f)
		f.Close()
		if err != nil {
			logger.Fatal("failed to parse flood levels", zap.Error(err))
		}
		e.GetFloodStore().Replace(flood.NewSnapshot(readings, time.Now()))
		logger.Info("loaded flood levels", zap.Int("roads", len(readings)))
	}

	res := e.FindPath(*start, *end, policy)
	if !res.Found {
		fmt.Printf("no route from %s to %s (%s)\n", *start, *end, policy)
		os.Exit(1)
	}

	fmt.Printf("route %s -> %s (%s): %s\n", *start, *end, policy, strings.Join(res.Roads, " -> "))
	fmt.Printf("distance %.2f, cost %.2f, settled %d intersections\n", res.Distance, res.Cost, res.NumSettledNodes)
}
