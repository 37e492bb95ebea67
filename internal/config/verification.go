package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// VerificationConfig carries the tunables of the verification workflow.
// All values have defaults so the bot runs without any of these variables
// being set; required infrastructure settings live in Config instead.
type VerificationConfig struct {
	Window          time.Duration // how long a new arrival has to verify
	SweepInterval   time.Duration // how often the reconciliation sweep runs
	CommandCooldown time.Duration // minimum interval between repeat commands
	DomainMarker    string        // substring an email must contain (case-insensitive)
	AcceptCleanup   time.Duration // delay before deleting the surface after accept
	RejectCleanup   time.Duration // delay before deleting the surface after reject
}

// LoadVerificationConfig reads the workflow tunables from the environment.
// Hour/minute/second granularity matches how operators think about these
// values; sub-unit durations are not supported on purpose.
func LoadVerificationConfig() VerificationConfig {
	v := VerificationConfig{
		Window:          time.Duration(envInt("VERIFICATION_WINDOW_HOURS", 2)) * time.Hour,
		SweepInterval:   time.Duration(envInt("SWEEP_INTERVAL_MINUTES", 15)) * time.Minute,
		CommandCooldown: time.Duration(envInt("COMMAND_COOLDOWN_SECONDS", 10)) * time.Second,
		DomainMarker:    strings.ToLower(envStr("EMAIL_DOMAIN_MARKER", "enactus")),
		AcceptCleanup:   envDur("ACCEPT_CLEANUP_DELAY", 10*time.Minute),
		RejectCleanup:   envDur("REJECT_CLEANUP_DELAY", 5*time.Minute),
	}
	if v.Window <= 0 {
		v.Window = 2 * time.Hour
	}
	if v.SweepInterval <= 0 {
		v.SweepInterval = 15 * time.Minute
	}
	if v.CommandCooldown < 0 {
		v.CommandCooldown = 0
	}
	return v
}

func envStr(k, d string) string { if v := os.Getenv(k); v != "" { return v }; return d }

func envInt(k string, d int) int {
	v := os.Getenv(k); if v == "" { return d }
	if n, err := strconv.Atoi(v); err == nil { return n }
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k); if v == "" { return d }
	if dur, err := time.ParseDuration(v); err == nil { return dur }
	return d
}
