package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/floodnav/pkg/engine"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"github.com/lintang-b-s/floodnav/pkg/http"
	"github.com/lintang-b-s/floodnav/pkg/http/usecases"
	"github.com/lintang-b-s/floodnav/pkg/logger"
	"github.com/lintang-b-s/floodnav/pkg/spatialindex"
	"github.com/lintang-b-s/floodnav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable per client rate limiting on the REST api")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(viper.GetString("TOPOLOGY_PATH"), viper.GetString("ROAD_LENGTHS_PATH"),
		logger)
	if err != nil {
		panic(err)
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetTopology(), logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	g, gctx := errgroup.WithContext(ctx)

	var poller *flood.Poller
	if csvURL := viper.GetString("FLOOD_CSV_URL"); csvURL != "" {
		fetcher := flood.NewSheetFetcher(csvURL, viper.GetDuration("FLOOD_FETCH_TIMEOUT"))
		poller = flood.NewPoller(fetcher, routingEngine.GetFloodStore(), viper.GetDuration("FLOOD_POLL_INTERVAL"),
			logger)
		g.Go(func() error {
			return poller.Run(gctx)
		})
	} else {
		logger.Warn("FLOOD_CSV_URL is not set, routing without flood levels")
	}

	routingService := usecases.NewRoutingService(logger, routingEngine, rtree)
	var refresher usecases.Refresher
	if poller != nil {
		refresher = poller
	}
	floodService := usecases.NewFloodService(logger, routingEngine.GetFloodStore(), refresher)

	api := http.NewServer(logger)
	if _, err := api.Use(gctx, logger, *useRateLimit, routingService, floodService); err != nil {
		panic(err)
	}
	g.Go(api.Wait)

	signal := http.GracefulShutdown()

	logger.Info("floodnav routing server stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
