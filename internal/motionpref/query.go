// Package motionpref decides once, at startup, whether the particle field
// animates or falls back to a static backdrop for users who prefer reduced
// motion.
package motionpref

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrUnavailable means the platform offers no way to ask.
var ErrUnavailable = errors.New("motionpref: reduced-motion query unavailable")

// EnvKey overrides the platform preference when set.
const EnvKey = "DRIFTFIELD_REDUCED_MOTION"

// Query asks the platform whether the user prefers reduced motion.
type Query interface {
	PrefersReducedMotion(ctx context.Context) (bool, error)
}

// Fixed always answers with its own value.
type Fixed bool

func (f Fixed) PrefersReducedMotion(context.Context) (bool, error) { return bool(f), nil }

// Env reads a boolean-ish environment variable.
type Env struct {
	Key    string
	Lookup func(string) (string, bool)
}

func (e Env) PrefersReducedMotion(context.Context) (bool, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	key := e.Key
	if key == "" {
		key = EnvKey
	}
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return false, ErrUnavailable
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "reduce":
		return true, nil
	case "0", "false", "no", "off", "no-preference":
		return false, nil
	}
	return false, fmt.Errorf("motionpref: %s=%q is not a boolean", key, v)
}

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// GSettings reads GNOME's enable-animations key.
type GSettings struct {
	Timeout time.Duration
	Run     Runner
}

func (g GSettings) PrefersReducedMotion(ctx context.Context) (bool, error) {
	out, err := runBounded(ctx, g.Timeout, g.Run, "gsettings", "get", "org.gnome.desktop.interface", "enable-animations")
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(string(out)) {
	case "false":
		return true, nil
	case "true":
		return false, nil
	}
	return false, fmt.Errorf("motionpref: unexpected gsettings output %q", out)
}

// Defaults reads the macOS accessibility reduceMotion flag.
type Defaults struct {
	Timeout time.Duration
	Run     Runner
}

func (d Defaults) PrefersReducedMotion(ctx context.Context) (bool, error) {
	out, err := runBounded(ctx, d.Timeout, d.Run, "defaults", "read", "com.apple.universalaccess", "reduceMotion")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == "1", nil
}

// Chain asks each query in turn and returns the first definitive answer.
// Queries reporting ErrUnavailable are skipped; other errors are returned.
type Chain []Query

func (c Chain) PrefersReducedMotion(ctx context.Context) (bool, error) {
	for _, q := range c {
		v, err := q.PrefersReducedMotion(ctx)
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		return v, err
	}
	return false, ErrUnavailable
}

// Platform is the query used for the "auto" setting.
func Platform() Query {
	chain := Chain{Env{}}
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		chain = append(chain, GSettings{})
	case "darwin":
		chain = append(chain, Defaults{})
	}
	return chain
}

// FromSetting maps a config value (auto, on, off) to a query.
func FromSetting(setting string) (Query, error) {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "", "auto":
		return Platform(), nil
	case "on", "reduce", "true":
		return Fixed(true), nil
	case "off", "false":
		return Fixed(false), nil
	}
	return nil, fmt.Errorf("motionpref: unknown setting %q (want auto, on or off)", setting)
}

func runBounded(ctx context.Context, timeout time.Duration, run Runner, name string, args ...string) ([]byte, error) {
	if run == nil {
		run = execRunner
	}
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := run(ctx, name, args...)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
	}
	return out, nil
}
