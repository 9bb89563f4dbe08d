package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port=%q", cfg.Port)
	}
	if cfg.Sensor.Source != SourceSimulated {
		t.Errorf("source=%q", cfg.Sensor.Source)
	}
	if cfg.Poll.SampleInterval != 30*time.Second {
		t.Errorf("sample interval=%v", cfg.Poll.SampleInterval)
	}
	if cfg.Poll.TickInterval != 500*time.Millisecond {
		t.Errorf("tick interval=%v", cfg.Poll.TickInterval)
	}
	if cfg.History.Capacity != 100 {
		t.Errorf("capacity=%d", cfg.History.Capacity)
	}
	if cfg.GPIO.MasterPin != 16 || cfg.GPIO.CompressorPin != 17 {
		t.Errorf("pins=%d/%d", cfg.GPIO.MasterPin, cfg.GPIO.CompressorPin)
	}
	if cfg.Sensor.Calibration.Beta != 3435 {
		t.Errorf("beta=%v", cfg.Sensor.Calibration.Beta)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := writeConfig(t, `
port: "9090"
sensor:
  source: IIO
  beta: 3950
poll:
  tick_interval: 250ms
mqtt:
  broker: tcp://broker:1883
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port=%q", cfg.Port)
	}
	if cfg.Sensor.Source != SourceIIO {
		t.Errorf("source=%q", cfg.Sensor.Source)
	}
	if cfg.Sensor.Calibration.Beta != 3950 {
		t.Errorf("beta=%v", cfg.Sensor.Calibration.Beta)
	}
	if cfg.Sensor.Calibration.SeriesOhms != 10000 {
		t.Errorf("series ohms default lost: %v", cfg.Sensor.Calibration.SeriesOhms)
	}
	if cfg.Poll.TickInterval != 250*time.Millisecond {
		t.Errorf("tick=%v", cfg.Poll.TickInterval)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("broker=%q", cfg.MQTT.Broker)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "mqtt:\n  broker: tcp://file:1883\n")
	t.Setenv("ICECREAM_MQTT_BROKER", "tcp://env:1883")
	t.Setenv("ICECREAM_PORT", "7000")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MQTT.Broker != "tcp://env:1883" {
		t.Errorf("broker=%q", cfg.MQTT.Broker)
	}
	if cfg.Port != "7000" {
		t.Errorf("port=%q", cfg.Port)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown source": "sensor:\n  source: thermocouple\n",
		"zero tick":      "poll:\n  tick_interval: 0s\n",
		"zero sample":    "poll:\n  sample_interval: 0s\n",
		"negative beta":  "sensor:\n  beta: -1\n",
		"zero capacity":  "history:\n  capacity: 0\n",
		"malformed yaml": "port: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
