package profile_test

import (
	"slices"
	"testing"

	"github.com/ardnew/tmpl/profile"
)

func TestApply(t *testing.T) {
	t.Parallel()

	cfg := profile.Apply(
		profile.WithMode("cpu"),
		profile.WithPath("/tmp/p"),
		profile.WithQuiet(true),
	)

	mode, path, quiet := cfg()
	if mode != "cpu" || path != "/tmp/p" || !quiet {
		t.Errorf("Apply() = (%q, %q, %v)", mode, path, quiet)
	}

	// Later options override earlier ones.
	mode, _, _ = profile.WithMode("heap")(cfg)()
	if mode != "heap" {
		t.Errorf("WithMode override = %q, want heap", mode)
	}
}

func TestStartNoop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  profile.Config
	}{
		{"nil", nil},
		{"empty", profile.Apply()},
		{"unknown mode", profile.Apply(profile.WithMode("bogus"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Must not panic, and Stop must be callable.
			tt.cfg.Start().Stop()
		})
	}
}

func TestModes(t *testing.T) {
	t.Parallel()

	modes := profile.Modes()
	if !profile.Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v, want none without %s tag", modes, profile.Tag)
		}

		return
	}

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	if !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() missing cpu: %v", modes)
	}
}
