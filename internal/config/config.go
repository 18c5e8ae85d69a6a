package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Feed scope constants selecting which upstream query the worker issues.
const (
	ScopeAll    = "all"
	ScopeVessel = "vessel"
	ScopeArea   = "area"
)

// Config captures all runtime configuration for the feed service.
type Config struct {
	App    AppConfig
	AISHub AISHubConfig
	Feed   FeedConfig
	Kafka  KafkaConfig
	Topics TopicConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// AISHubConfig holds the upstream account settings: the registered
// username, the requested serialization format ("xml", "json" or "csv") and
// the compression scheme (0 none, 1 zip, 2 gzip, 3 bzip2), matching the web
// service's request parameters.
type AISHubConfig struct {
	Username              string
	Endpoint              string
	Output                string
	Compression           int
	DataFormat            int
	RequestTimeoutSeconds int
}

// FeedConfig selects the query the poll loop issues and how often. The
// vessel scope uses MMSI or IMO, the area scope the bounding box fields.
type FeedConfig struct {
	Scope               string
	MMSI                int
	IMO                 int
	LatMin              float64
	LatMax              float64
	LonMin              float64
	LonMax              float64
	PollIntervalSeconds int
}

// KafkaConfig defines broker information.
type KafkaConfig struct {
	Brokers []string
}

// TopicConfig enumerates the topics the feed publishes to.
type TopicConfig struct {
	Positions  string
	FeedStatus string
}

// Load reads environment variables, applies defaults, validates required
// values and returns a populated Config instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.AISHub.Username = ldr.getString("AISHUB_USERNAME", "", true)
	cfg.AISHub.Endpoint = ldr.getString("AISHUB_ENDPOINT", "", false)
	cfg.AISHub.Output = ldr.getString("AISHUB_OUTPUT", "json", false)
	cfg.AISHub.Compression = ldr.getInt("AISHUB_COMPRESS", 0, false)
	cfg.AISHub.DataFormat = ldr.getInt("AISHUB_DATA_FORMAT", 1, false)
	cfg.AISHub.RequestTimeoutSeconds = ldr.getInt("AISHUB_REQUEST_TIMEOUT_SECONDS", 30, false)

	cfg.Feed.Scope = strings.ToLower(ldr.getString("FEED_SCOPE", ScopeAll, false))
	cfg.Feed.MMSI = ldr.getInt("FEED_MMSI", 0, false)
	cfg.Feed.IMO = ldr.getInt("FEED_IMO", 0, false)
	cfg.Feed.LatMin = ldr.getFloat("FEED_LATMIN", -90, false)
	cfg.Feed.LatMax = ldr.getFloat("FEED_LATMAX", 90, false)
	cfg.Feed.LonMin = ldr.getFloat("FEED_LONMIN", -180, false)
	cfg.Feed.LonMax = ldr.getFloat("FEED_LONMAX", 180, false)
	cfg.Feed.PollIntervalSeconds = ldr.getInt("FEED_POLL_INTERVAL_SECONDS", 60, false)

	cfg.Kafka.Brokers = ldr.getStringSlice("KAFKA_BROKERS", true)

	cfg.Topics.Positions = ldr.getString("KAFKA_POSITIONS_TOPIC", "", true)
	cfg.Topics.FeedStatus = ldr.getString("KAFKA_FEED_STATUS_TOPIC", "", true)

	switch cfg.Feed.Scope {
	case ScopeAll, ScopeArea:
	case ScopeVessel:
		if cfg.Feed.MMSI == 0 && cfg.Feed.IMO == 0 {
			ldr.addError("FEED_MMSI or FEED_IMO is required when FEED_SCOPE is vessel")
		}
	default:
		ldr.addError(fmt.Sprintf("FEED_SCOPE must be one of %s, %s, %s", ScopeAll, ScopeVessel, ScopeArea))
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	val := l.getString(key, "", required)
	if val == "" {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid integer", key))
		return def
	}
	return i
}

func (l *envLoader) getFloat(key string, def float64, required bool) float64 {
	val := l.getString(key, "", required)
	if val == "" {
		return def
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid number", key))
		return def
	}
	return f
}

func (l *envLoader) getStringSlice(key string, required bool) []string {
	raw := l.getString(key, "", required)
	if raw == "" {
		if required {
			return nil
		}
		return []string{}
	}
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if required && len(out) == 0 {
		l.addError(fmt.Sprintf("%s must contain at least one entry", key))
	}
	return out
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
