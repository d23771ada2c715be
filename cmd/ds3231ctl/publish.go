package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

type publishFunc func(topic, payload string) error

const mqttTimeout = 10 * time.Second

func dialMQTT(cfg MQTTConfig) (publishFunc, func(), error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(mqttTimeout).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttTimeout) {
		return nil, nil, fmt.Errorf("mqtt: connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, nil, fmt.Errorf("mqtt: connect to %s: %w", cfg.Broker, err)
	}
	pub := func(topic, payload string) error {
		t := client.Publish(topic, 0, false, payload)
		if !t.WaitTimeout(mqttTimeout) {
			return fmt.Errorf("mqtt: publish to %s timed out", topic)
		}
		return t.Error()
	}
	return pub, func() { client.Disconnect(250) }, nil
}

// parseTarget reads "hh:mm".
func parseTarget(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("target %q: want hh:mm", s)
	}
	if hour, err = strconv.Atoi(hh); err != nil {
		return 0, 0, fmt.Errorf("target %q: %w", s, err)
	}
	if minute, err = strconv.Atoi(mm); err != nil {
		return 0, 0, fmt.Errorf("target %q: %w", s, err)
	}
	return hour, minute, nil
}

// publish sends the fixed-width time string to the configured topic every interval, and the countdown to the target
// on a subtopic when one is configured.
func (a *app) publish(ctx context.Context) error {
	cfg := a.cfg.MQTT
	countdown := cfg.Target != ""
	var hour, minute int
	if countdown {
		var err error
		if hour, minute, err = parseTarget(cfg.Target); err != nil {
			return err
		}
	}

	pub, closeFn, err := a.dial(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	log := a.log.WithFields(logrus.Fields{
		"broker": cfg.Broker,
		"topic":  cfg.Topic,
	})
	log.Info("publishing")

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for n := 1; ; n++ {
		s, err := a.clock.FixedString()
		if err != nil {
			return err
		}
		if err := pub(cfg.Topic, s); err != nil {
			return err
		}
		if countdown {
			d, err := a.clock.TimeDifference(hour, minute)
			if err != nil {
				return err
			}
			if err := pub(cfg.Topic+"/countdown", d); err != nil {
				return err
			}
		}
		log.WithField("time", s).Debug("published")
		if cfg.Count > 0 && n >= cfg.Count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
