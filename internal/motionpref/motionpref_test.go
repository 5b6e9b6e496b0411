package motionpref

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func lookup(vals map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vals[k]
		return v, ok
	}
}

func TestEnv(t *testing.T) {
	tests := []struct {
		name    string
		vals    map[string]string
		want    bool
		wantErr error
	}{
		{"unset", map[string]string{}, false, ErrUnavailable},
		{"empty", map[string]string{EnvKey: " "}, false, ErrUnavailable},
		{"reduce", map[string]string{EnvKey: "reduce"}, true, nil},
		{"one", map[string]string{EnvKey: "1"}, true, nil},
		{"no preference", map[string]string{EnvKey: "no-preference"}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Env{Lookup: lookup(tt.vals)}.PrefersReducedMotion(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := (Env{Lookup: lookup(map[string]string{EnvKey: "maybe"})}).PrefersReducedMotion(context.Background()); err == nil {
		t.Error("expected error for non-boolean value")
	}
}

func TestGSettings(t *testing.T) {
	fake := func(out string, err error) Runner {
		return func(ctx context.Context, name string, args ...string) ([]byte, error) {
			if name != "gsettings" {
				t.Fatalf("ran %q", name)
			}
			return []byte(out), err
		}
	}

	if v, err := (GSettings{Run: fake("false\n", nil)}).PrefersReducedMotion(context.Background()); err != nil || !v {
		t.Errorf("animations disabled: got %v, %v", v, err)
	}
	if v, err := (GSettings{Run: fake("true\n", nil)}).PrefersReducedMotion(context.Background()); err != nil || v {
		t.Errorf("animations enabled: got %v, %v", v, err)
	}
	_, err := GSettings{Run: fake("", &exec.Error{Name: "gsettings", Err: exec.ErrNotFound})}.PrefersReducedMotion(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("missing binary: err = %v, want ErrUnavailable", err)
	}
}

func TestChain(t *testing.T) {
	unavailable := Env{Lookup: lookup(nil)}

	v, err := Chain{unavailable, Fixed(true)}.PrefersReducedMotion(context.Background())
	if err != nil || !v {
		t.Errorf("got %v, %v; want true, nil", v, err)
	}

	_, err = Chain{unavailable}.PrefersReducedMotion(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestGateDecide(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  Mode
	}{
		{"no query", nil, Animate},
		{"prefers reduced", Fixed(true), Static},
		{"no preference", Fixed(false), Animate},
		{"unavailable", Chain{}, Animate},
		{"broken", Env{Lookup: lookup(map[string]string{EnvKey: "??"})}, Animate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewGate(tt.query, nil).Decide(context.Background()); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromSetting(t *testing.T) {
	for _, s := range []string{"auto", "", "on", "off", "OFF"} {
		if _, err := FromSetting(s); err != nil {
			t.Errorf("FromSetting(%q): %v", s, err)
		}
	}
	if _, err := FromSetting("sometimes"); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestBackdrop(t *testing.T) {
	b := Backdrop()
	if len(b) != 2 {
		t.Fatalf("backdrop gradients = %d, want 2", len(b))
	}
	for _, g := range b {
		if g.Color.A != 0.02 {
			t.Errorf("backdrop alpha = %v, want 0.02", g.Color.A)
		}
	}
}
