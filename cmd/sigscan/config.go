package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const logFilePrefix = "sigscan"

// config is the merged view of flags, SIGSCAN_* environment variables and
// the optional config file.
type config struct {
	LogLevel   string
	LogFile    string
	IgnoreCase bool
	MinAddress uint64
	MaxAddress uint64
	MaxResults int
}

var logFile *os.File

func loadConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetEnvPrefix("SIGSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("min-address", "0x0")
	v.SetDefault("max-address", "0x7FFFFFFFFFFF")
	v.SetDefault("max-results", 0)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, fmt.Errorf("bind flags: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	minAddr, err := parseAddress(v.GetString("min-address"))
	if err != nil {
		return config{}, fmt.Errorf("min-address: %w", err)
	}
	maxAddr, err := parseAddress(v.GetString("max-address"))
	if err != nil {
		return config{}, fmt.Errorf("max-address: %w", err)
	}
	if maxAddr <= minAddr {
		return config{}, fmt.Errorf("max-address %#x must be above min-address %#x", maxAddr, minAddr)
	}

	return config{
		LogLevel:   v.GetString("log-level"),
		LogFile:    v.GetString("log-file"),
		IgnoreCase: v.GetBool("ignore-case"),
		MinAddress: minAddr,
		MaxAddress: maxAddr,
		MaxResults: v.GetInt("max-results"),
	}, nil
}

// parseAddress accepts decimal or 0x-prefixed hexadecimal.
func parseAddress(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}

func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	logger.SetLevel(level)

	if cfg.LogFile == "" {
		return nil
	}

	logFile, err = openLogFile(cfg.LogFile)
	if err != nil {
		logger.Warn("cannot create log file", "err", err)
		return nil
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
	logger.SetReportTimestamp(true)
	logger.Info("session started", "command", cmd.CommandPath())
	return nil
}

func teardown() error {
	if logFile == nil {
		return nil
	}
	logger.Info("session finished")
	logger.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// openLogFile opens name for appending. "auto" selects a timestamped name in
// the working directory.
func openLogFile(name string) (*os.File, error) {
	if name == "auto" {
		name = fmt.Sprintf("%s_%s.log", logFilePrefix, time.Now().Format("2006-01-02_15-04-05"))
	}
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
