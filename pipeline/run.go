package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timeplus-io/chameleon/locsync/config"
	"github.com/timeplus-io/chameleon/locsync/log"
	"github.com/timeplus-io/chameleon/locsync/metrics"
	"github.com/timeplus-io/chameleon/locsync/recorder"
	"github.com/timeplus-io/chameleon/locsync/sink/vpdesk"
	"github.com/timeplus-io/chameleon/locsync/source/gpsgate"
	"github.com/timeplus-io/chameleon/locsync/transform"
	"github.com/timeplus-io/chameleon/locsync/utils"
)

var ErrSyncFailed = errors.New("synchronization incomplete")

// Build wires the GpsGate reader, the converter, the VP Desk writer and the
// sync log recorder described by cfg.
func Build(cfg config.SyncConfig, mapping transform.Mapping, m metrics.Metrics) *Pipeline {
	client := utils.NewDefaultHttpClient(cfg.HTTPTimeout())

	reader := gpsgate.NewReader(
		gpsgate.NewClient(cfg.GpsGateAddress, cfg.GpsGateToken, client),
		cfg.GpsGateApplicationID,
		cfg.GpsGateUserID,
	)
	writer := vpdesk.NewWriter(
		vpdesk.NewClient(cfg.VPDeskAddress, cfg.VPDeskAPIKey, client),
		cfg.VPDeskResourceUID,
	)

	return NewPipeline(reader, transform.NewConverter(mapping), writer, recorder.NewRecorder(cfg.SyncLogFile, cfg.SyncLogMaxSizeMB), m)
}

// MappingFor resolves the attribute mapping: flags first, then the optional
// mapping file on top.
func MappingFor(cfg config.SyncConfig) (transform.Mapping, error) {
	mapping := transform.Mapping{
		ResourceModel: cfg.ResourceModel,
		EntityName:    cfg.EntityName,
	}
	if cfg.MappingFile != "" {
		return transform.LoadMapping(cfg.MappingFile, mapping)
	}
	return mapping, mapping.Validate()
}

func Run(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	log.Init(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		return err
	}

	mapping, err := MappingFor(cfg)
	if err != nil {
		return err
	}

	manager := metrics.NewManager()
	result := Build(cfg, mapping, manager).Run(context.Background())

	if cfg.MetricsTextfile != "" {
		if err := manager.Save(cfg.MetricsTextfile); err != nil {
			log.Logger().Warnf("failed to write metrics to %s: %s", cfg.MetricsTextfile, err)
		}
	}

	if !result.Success {
		fmt.Println("FAILED: synchronization incomplete, check errors above")
		return ErrSyncFailed
	}
	fmt.Println("COMPLETE: location synced from GpsGate to VP Desk")
	return nil
}
