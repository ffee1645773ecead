package main

import (
	"flag"

	"github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/logger"
	"github.com/lintang-b-s/floodnav/pkg/preprocessor"
)

var (
	topologyPath    = flag.String("topology", "./data/junctions.json", "intersection table (.json or .json.bz2)")
	roadLengthsPath = flag.String("out", "./data/road_lengths.json", "output road length table (.json or .json.bz2)")
	keepExisting    = flag.Bool("keep_existing", true, "keep lengths already present in the output file")
)

// estimates a length for every road of the topology from the spread of its intersections
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	topology, err := datastructure.ReadTopology(*topologyPath)
	if err != nil {
		panic(err)
	}

	existing := datastructure.NewRoadLengths(nil)
	if *keepExisting {
		existing, err = datastructure.ReadRoadLengths(*roadLengthsPath)
		if err != nil {
			panic(err)
		}
	}

	prep := preprocessor.NewPreprocessor(topology, logger)
	report, err := prep.PreProcessing(existing, *roadLengthsPath)
	if err != nil {
		panic(err)
	}

	logger.Sugar().Infof("Preprocessing completed successfully. %d road lengths written to %s",
		report.NumRoads, *roadLengthsPath)
}
