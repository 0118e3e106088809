package config

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := GetDefaultOptions()

	if opts.Host != defaultHost {
		t.Errorf("Host not set")
	}
	if opts.Port != defaultPort {
		t.Errorf("Port not set")
	}
	if opts.LogLevel != defaultLogLevel {
		t.Errorf("LogLevel not set")
	}
	if opts.DefaultYearlyGoal != defaultYearlyGoal {
		t.Errorf("DefaultYearlyGoal not set")
	}
}

func TestLoadConfigFile(t *testing.T) {
	GetDefaultOptions()

	opts, err := ParseFile("config_test.toml")
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	t.Logf(`Config
		Host: %s
		Port: %d
		DSN: %s
		LogLevel: %s
		LogFile: %s
		`, opts.Host, opts.Port, opts.DSN, opts.LogLevel, opts.LogFile)

	if opts.Host != "0.0.0.0" {
		t.Errorf("Host not set")
	}
	if opts.Port != 2333 {
		t.Errorf("Port not set")
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel not set")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("LogFile not set")
	}
	if opts.DefaultYearlyGoal != 36 {
		t.Errorf("DefaultYearlyGoal not set")
	}
}
