package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the ds3231ctl configuration file.
type Config struct {
	// Bus is the periph.io bus name, e.g. "/dev/i2c-1" or "1". Empty picks the first bus.
	Bus      string     `yaml:"bus"`
	Address  uint8      `yaml:"address"`
	Strict   bool       `yaml:"strict"`
	LogLevel string     `yaml:"log_level"`
	MQTT     MQTTConfig `yaml:"mqtt"`
}

// MQTTConfig controls the publish command.
type MQTTConfig struct {
	Broker   string        `yaml:"broker"`
	ClientID string        `yaml:"client_id"`
	Topic    string        `yaml:"topic"`
	Interval time.Duration `yaml:"interval"`
	// Count limits the number of publications; 0 publishes until interrupted.
	Count int `yaml:"count"`
	// Target is an optional "hh:mm" whose countdown is published on Topic + "/countdown".
	Target string `yaml:"target"`
}

func Default() *Config {
	return &Config{
		Bus:      "",
		Address:  0x68,
		LogLevel: "info",
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "ds3231ctl",
			Topic:    "rtc/ds3231",
			Interval: 10 * time.Second,
		},
	}
}

// LoadConfig reads path on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := deviceAddress(uint(cfg.Address)); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MQTT.Interval <= 0 {
		return nil, fmt.Errorf("parse %s: mqtt.interval must be positive", path)
	}
	return cfg, nil
}

// deviceAddress checks that v is a 7-bit I2C address.
func deviceAddress(v uint) (uint8, error) {
	if v > 0x7F {
		return 0, fmt.Errorf("address 0x%x is not a 7-bit I2C address", v)
	}
	return uint8(v), nil
}
