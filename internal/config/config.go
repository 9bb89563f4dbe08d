// Package config loads configs/config.yml with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"icecream_controller/internal/gpio"
	"icecream_controller/internal/history"
	"icecream_controller/internal/sensor"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. ICECREAM_MQTT_BROKER.
const EnvPrefix = "ICECREAM"

// Sensor sources.
const (
	SourceIIO       = "iio"
	SourceSimulated = "simulated"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	DBPath    string

	Sensor    SensorConfig
	GPIO      GPIOConfig
	Poll      PollConfig
	History   HistoryConfig
	MQTT      MQTTConfig
	Auth      AuthConfig
	Simulator SimulatorConfig
}

type SensorConfig struct {
	Source      string
	IIOPath     string
	Calibration sensor.Calibration
}

type GPIOConfig struct {
	// Enabled drives real relay lines; otherwise relays are in-memory.
	Enabled       bool
	Chip          string
	MasterPin     int
	CompressorPin int
}

// PollConfig holds the control loop cadence. TickInterval bounds how far
// the compressor can overrun an armed timer.
type PollConfig struct {
	SampleInterval time.Duration
	TickInterval   time.Duration
}

type HistoryConfig struct {
	Capacity int
}

type MQTTConfig struct {
	Broker      string // empty disables publishing
	ClientID    string
	TopicPrefix string
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type SimulatorConfig struct {
	Tick       time.Duration
	AmbientC   float64
	FloorC     float64
	CoolPerMin float64
	WarmPerMin float64
	StartTempC float64
}

func setDefaults(v *viper.Viper) {
	cal := sensor.DefaultCalibration()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("db.path", "icecream.db")

	v.SetDefault("sensor.source", SourceSimulated)
	v.SetDefault("sensor.iio_path", sensor.DefaultIIOPath)
	v.SetDefault("sensor.adc_max", cal.ADCMax)
	v.SetDefault("sensor.vref", cal.VRef)
	v.SetDefault("sensor.series_ohms", cal.SeriesOhms)
	v.SetDefault("sensor.beta", cal.Beta)
	v.SetDefault("sensor.nominal_ohms", cal.NominalOhms)
	v.SetDefault("sensor.nominal_kelvin", cal.NominalKelvin)

	v.SetDefault("gpio.enabled", false)
	v.SetDefault("gpio.chip", gpio.DefaultChip)
	v.SetDefault("gpio.master_pin", gpio.DefaultPinMaster)
	v.SetDefault("gpio.compressor_pin", gpio.DefaultPinCompressor)

	v.SetDefault("poll.sample_interval", "30s")
	v.SetDefault("poll.tick_interval", "500ms")
	v.SetDefault("history.capacity", history.DefaultCapacity)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "icecream-controller")
	v.SetDefault("mqtt.topic_prefix", "icecream")

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", "1h")

	v.SetDefault("simulator.tick", "1s")
	v.SetDefault("simulator.ambient_c", 22.0)
	v.SetDefault("simulator.floor_c", -25.0)
	v.SetDefault("simulator.cool_per_min", 0.08)
	v.SetDefault("simulator.warm_per_min", 0.02)
	v.SetDefault("simulator.start_temp_c", 20.0)
}

// Load reads .env (if present), then config.yml from dir (if present), then
// ICECREAM_* environment variables, in increasing precedence.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		DBPath:    v.GetString("db.path"),
		Sensor: SensorConfig{
			Source:  strings.ToLower(v.GetString("sensor.source")),
			IIOPath: v.GetString("sensor.iio_path"),
			Calibration: sensor.Calibration{
				ADCMax:        v.GetFloat64("sensor.adc_max"),
				VRef:          v.GetFloat64("sensor.vref"),
				SeriesOhms:    v.GetFloat64("sensor.series_ohms"),
				Beta:          v.GetFloat64("sensor.beta"),
				NominalOhms:   v.GetFloat64("sensor.nominal_ohms"),
				NominalKelvin: v.GetFloat64("sensor.nominal_kelvin"),
			},
		},
		GPIO: GPIOConfig{
			Enabled:       v.GetBool("gpio.enabled"),
			Chip:          v.GetString("gpio.chip"),
			MasterPin:     v.GetInt("gpio.master_pin"),
			CompressorPin: v.GetInt("gpio.compressor_pin"),
		},
		Poll: PollConfig{
			SampleInterval: v.GetDuration("poll.sample_interval"),
			TickInterval:   v.GetDuration("poll.tick_interval"),
		},
		History: HistoryConfig{Capacity: v.GetInt("history.capacity")},
		MQTT: MQTTConfig{
			Broker:      v.GetString("mqtt.broker"),
			ClientID:    v.GetString("mqtt.client_id"),
			TopicPrefix: v.GetString("mqtt.topic_prefix"),
		},
		Auth: AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Simulator: SimulatorConfig{
			Tick:       v.GetDuration("simulator.tick"),
			AmbientC:   v.GetFloat64("simulator.ambient_c"),
			FloorC:     v.GetFloat64("simulator.floor_c"),
			CoolPerMin: v.GetFloat64("simulator.cool_per_min"),
			WarmPerMin: v.GetFloat64("simulator.warm_per_min"),
			StartTempC: v.GetFloat64("simulator.start_temp_c"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Sensor.Source {
	case SourceIIO, SourceSimulated:
	default:
		return fmt.Errorf("sensor.source must be %q or %q, got %q", SourceIIO, SourceSimulated, c.Sensor.Source)
	}
	if c.Poll.SampleInterval <= 0 {
		return errors.New("poll.sample_interval must be positive")
	}
	if c.Poll.TickInterval <= 0 {
		return errors.New("poll.tick_interval must be positive")
	}
	cal := c.Sensor.Calibration
	if cal.ADCMax <= 0 || cal.VRef <= 0 || cal.SeriesOhms <= 0 || cal.Beta <= 0 || cal.NominalOhms <= 0 || cal.NominalKelvin <= 0 {
		return errors.New("sensor calibration constants must be positive")
	}
	if c.History.Capacity <= 0 {
		return errors.New("history.capacity must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Sensor.Source == SourceSimulated && c.Simulator.Tick <= 0 {
		return errors.New("simulator.tick must be positive")
	}
	return nil
}
