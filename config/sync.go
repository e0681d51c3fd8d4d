package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SyncConfig is everything one sync run needs. It is decoded once at startup
// and passed around by value.
type SyncConfig struct {
	GpsGateAddress       string `mapstructure:"gpsgate-address"`
	GpsGateToken         string `mapstructure:"gpsgate-token"`
	GpsGateApplicationID string `mapstructure:"gpsgate-application-id"`
	GpsGateUserID        string `mapstructure:"gpsgate-user-id"`

	VPDeskAddress     string `mapstructure:"vpdesk-address"`
	VPDeskAPIKey      string `mapstructure:"vpdesk-apikey"`
	VPDeskResourceUID string `mapstructure:"vpdesk-resource-uid"`

	ResourceModel string `mapstructure:"resource-model"`
	EntityName    string `mapstructure:"entity-name"`
	MappingFile   string `mapstructure:"mapping-file"`

	HTTPTimeoutSeconds int    `mapstructure:"http-timeout"`
	SyncLogFile        string `mapstructure:"sync-log-file"`
	SyncLogMaxSizeMB   int    `mapstructure:"sync-log-max-size"`
	MetricsTextfile    string `mapstructure:"metrics-textfile"`
	Debug              bool   `mapstructure:"debug"`
}

// Load decodes every key of Conf from v.
func Load(v *viper.Viper) (SyncConfig, error) {
	settings := make(map[string]interface{}, len(Conf))
	for key := range Conf {
		settings[key] = v.Get(key)
	}

	var cfg SyncConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, errors.Wrap(err, "failed to create config decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return cfg, errors.Wrap(err, "failed to decode config")
	}

	cfg.GpsGateAddress = strings.TrimRight(cfg.GpsGateAddress, "/")
	cfg.VPDeskAddress = strings.TrimRight(cfg.VPDeskAddress, "/")
	return cfg, nil
}

func (c SyncConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c SyncConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"gpsgate-address", c.GpsGateAddress},
		{"gpsgate-token", c.GpsGateToken},
		{"gpsgate-application-id", c.GpsGateApplicationID},
		{"gpsgate-user-id", c.GpsGateUserID},
		{"vpdesk-address", c.VPDeskAddress},
		{"vpdesk-apikey", c.VPDeskAPIKey},
		{"vpdesk-resource-uid", c.VPDeskResourceUID},
		{"sync-log-file", c.SyncLogFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Errorf("%s is required", r.key)
		}
	}

	for _, addr := range []struct {
		key   string
		value string
	}{
		{"gpsgate-address", c.GpsGateAddress},
		{"vpdesk-address", c.VPDeskAddress},
	} {
		u, err := url.Parse(addr.value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", addr.key)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.Errorf("invalid %s %q: scheme must be http or https", addr.key, addr.value)
		}
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return errors.Errorf("http-timeout must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	if c.SyncLogMaxSizeMB <= 0 {
		return errors.Errorf("sync-log-max-size must be positive, got %d", c.SyncLogMaxSizeMB)
	}
	return nil
}
