package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Panorama-Block/near-versions/internal/aggregator"
	"github.com/Panorama-Block/near-versions/internal/api"
	"github.com/Panorama-Block/near-versions/internal/config"
	"github.com/Panorama-Block/near-versions/internal/kafka"
	"github.com/Panorama-Block/near-versions/internal/report"
	"github.com/Panorama-Block/near-versions/internal/types"
)

// App runs the fetch, aggregate and report stages once
type App struct {
	config    *config.Config
	api       *api.API
	writer    *report.Writer
	publisher kafka.Publisher
	out       io.Writer
	now       func() time.Time
}

// NewApp creates an application for the node debug API at nodeAddr (host:port)
func NewApp(cfg *config.Config, nodeAddr string) *App {
	return &App{
		config: cfg,
		api:    api.NewAPI(nodeAddr, cfg),
		writer: report.NewWriter(cfg.OutputPath),
		out:    os.Stdout,
		now:    time.Now,
	}
}

// SetOutput redirects the human readable summary
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// SetPublisher replaces the report publisher
func (a *App) SetPublisher(p kafka.Publisher) {
	a.publisher = p
}

// SetupPublisher connects to Kafka when a broker is configured. A failed
// connection only disables publishing.
func (a *App) SetupPublisher() {
	if a.config.KafkaBroker == "" {
		return
	}
	producer, err := kafka.NewProducer(a.config.KafkaBroker, a.config.KafkaTopicVersions)
	if err != nil {
		logrus.Warnf("Kafka publishing disabled: %v", err)
		return
	}
	logrus.Infof("Publishing reports to Kafka topic %s", a.config.KafkaTopicVersions)
	a.publisher = producer
}

// Close releases the publisher
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
}

// Run executes one full pass. Nothing is written when fetching or
// aggregation fails.
func (a *App) Run(ctx context.Context) (*types.Report, error) {
	epochInfo, err := a.api.Debug.GetEpochInfo(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := a.api.Debug.GetEntitySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	totalValidators, err := a.fetchValidatorCount(ctx)
	if err != nil {
		return nil, err
	}

	result, err := aggregator.Aggregate(epochInfo, snapshot)
	if err != nil {
		return nil, fmt.Errorf("aggregating versions: %w", err)
	}

	if a.config.PoolDetailsEnabled {
		if err := a.attachPoolDetails(ctx, result); err != nil {
			return nil, err
		}
	}

	rep := report.Build(result, totalValidators, a.now())
	path, err := a.writer.Write(rep)
	if err != nil {
		return nil, err
	}
	if err := report.PrintSummary(a.out, path, rep); err != nil {
		return nil, err
	}

	if a.publisher != nil {
		if err := a.publisher.PublishReport(ctx, rep); err != nil {
			logrus.Warnf("Could not publish report: %v", err)
		}
	}
	return rep, nil
}

// fetchValidatorCount degrades transport, decoding and RPC failures to an
// unknown count. Other errors, such as a cancelled context, are returned.
func (a *App) fetchValidatorCount(ctx context.Context) (types.OptionalCount, error) {
	n, err := a.api.RPC.GetTotalValidatorCount(ctx)
	if err == nil {
		return types.KnownCount(n), nil
	}
	if !isSoftFailure(err) {
		return types.OptionalCount{}, fmt.Errorf("fetching validator count: %w", err)
	}
	logrus.Warnf("Could not fetch total validators count: %v", err)
	return types.OptionalCount{}, nil
}

func (a *App) attachPoolDetails(ctx context.Context, result *aggregator.Result) error {
	details, err := a.api.RPC.GetPoolDetails(ctx, a.config.PoolDetailsContract)
	if err != nil {
		if !isSoftFailure(err) {
			return fmt.Errorf("fetching pool details: %w", err)
		}
		logrus.Warnf("Could not fetch pool details: %v", err)
		return nil
	}
	attached := result.AttachPools(details)
	logrus.Debugf("Loaded details for %d pools, matched %d block producers", len(details), attached)
	return nil
}

func isSoftFailure(err error) bool {
	var transportErr *api.TransportError
	var rpcErr *api.RPCError
	return errors.As(err, &transportErr) ||
		errors.As(err, &rpcErr) ||
		errors.Is(err, types.ErrMalformedResponse)
}
