// ds3231ctl reads and adjusts a DS3231 real-time clock attached to a Linux I2C bus.
//
// Usage:
//
//	ds3231ctl [-config ds3231ctl.yml] [-bus /dev/i2c-1] [-strict] show
//	ds3231ctl diff 6 0
//	ds3231ctl shell < commands.txt
//	ds3231ctl publish
//
// Run "ds3231ctl help" for the full command list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ajanata/drivers/ds3231"
	"github.com/ajanata/drivers/hostbus"
	"github.com/ajanata/drivers/rtc"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	busName := flag.String("bus", "", "I2C bus name (overrides config)")
	addr := flag.Uint("addr", 0, "device address (overrides config)")
	strict := flag.Bool("strict", false, "reject out-of-range values and unknown fields")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(flag.CommandLine.Output(), usage)
	}
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	cfg := Default()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			logger.WithError(err).Fatal("failed to load configuration")
		}
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *addr != 0 {
		a, err := deviceAddress(*addr)
		if err != nil {
			logger.WithError(err).Fatal("invalid -addr")
		}
		cfg.Address = a
	}
	if *strict {
		cfg.Strict = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	bus, err := hostbus.Open(cfg.Bus)
	if err != nil {
		logger.WithError(err).Fatal("failed to open I2C bus")
	}
	defer bus.Close()

	dev := ds3231.New(bus)
	dev.Configure(ds3231.Config{Address: cfg.Address})
	logger.WithFields(logrus.Fields{
		"bus":     bus.String(),
		"address": fmt.Sprintf("0x%02x", dev.Address),
	}).Debug("device ready")

	if lost, err := dev.LostPower(); err != nil {
		logger.WithError(err).Warn("cannot read oscillator status")
	} else if lost {
		logger.Warn("oscillator stopped since the time was last set; run sync or set")
	}

	clock := rtc.New(&dev)
	clock.Configure(rtc.Config{Output: os.Stdout, Strict: cfg.Strict})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		clock: clock,
		cfg:   cfg,
		log:   logger,
		in:    os.Stdin,
		out:   os.Stdout,
		now:   time.Now,
		dial:  dialMQTT,
	}
	if err := a.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		logger.WithError(err).Error("command failed")
		stop()
		bus.Close()
		os.Exit(1)
	}
}
