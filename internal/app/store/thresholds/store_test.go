package thresholds

import (
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
)

func TestStore_DefaultsOnFirstTouch(t *testing.T) {
	s := New()

	got, err := s.Get("sess1", models.ParamMetalTemperature)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Lower == nil || *got.Lower != 710 {
		t.Errorf("default lower = %v, want 710", got.Lower)
	}
	if got.Upper == nil || *got.Upper != 730 {
		t.Errorf("default upper = %v, want 730", got.Upper)
	}

	// Every parameter has a record from the start.
	all := s.All("sess1")
	if len(all) != len(models.AllParameters) {
		t.Errorf("All() returned %d parameters, want %d", len(all), len(models.AllParameters))
	}
}

func TestStore_SetParsesInteger(t *testing.T) {
	s := New()

	if err := s.Set("sess1", models.ParamMetalTemperature, SideUpper, "735"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("sess1", models.ParamMetalTemperature, SideLower, " 700 "); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, _ := s.Get("sess1", models.ParamMetalTemperature)
	if *got.Lower != 700 || *got.Upper != 735 {
		t.Errorf("thresholds = (%d, %d), want (700, 735)", *got.Lower, *got.Upper)
	}
}

func TestStore_SilentRejection(t *testing.T) {
	// Non-numeric input leaves the prior value untouched and
	// raises no error.
	s := New()

	for _, raw := range []string{"abc", "", "-", "12.5", "7e2"} {
		if err := s.Set("sess1", models.ParamMetalTemperature, SideUpper, raw); err != nil {
			t.Errorf("Set(%q) error = %v, want nil", raw, err)
		}
		got, _ := s.Get("sess1", models.ParamMetalTemperature)
		if got.Upper == nil || *got.Upper != 730 {
			t.Errorf("after Set(%q), upper = %v, want retained 730", raw, got.Upper)
		}
	}
}

func TestStore_AcceptsInvertedBounds(t *testing.T) {
	s := New()

	_ = s.Set("sess1", models.ParamTiltingAngle, SideLower, "50")

	got, _ := s.Get("sess1", models.ParamTiltingAngle)
	if *got.Lower != 50 || *got.Upper != 35 {
		t.Errorf("thresholds = (%d, %d), want lower 50 > upper 35 surfaced as-is", *got.Lower, *got.Upper)
	}
}

func TestStore_UnknownParameter(t *testing.T) {
	s := New()

	if _, err := s.Get("sess1", models.Parameter("bogus")); err != models.ErrUnknownParameter {
		t.Errorf("Get(bogus) error = %v, want ErrUnknownParameter", err)
	}
	if err := s.Set("sess1", models.Parameter("bogus"), SideLower, "1"); err != models.ErrUnknownParameter {
		t.Errorf("Set(bogus) error = %v, want ErrUnknownParameter", err)
	}
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s := New()

	_ = s.Set("sessA", models.ParamMetalTemperature, SideUpper, "999")

	a, _ := s.Get("sessA", models.ParamMetalTemperature)
	b, _ := s.Get("sessB", models.ParamMetalTemperature)
	if *a.Upper != 999 {
		t.Errorf("sessA upper = %d, want 999", *a.Upper)
	}
	if *b.Upper != 730 {
		t.Errorf("sessB upper = %d, want default 730", *b.Upper)
	}
}

func TestStore_ParameterSwitchKeepsValues(t *testing.T) {
	s := New()

	_ = s.Set("sess1", models.ParamMetalTemperature, SideLower, "700")

	// Touching another parameter must not reset the first.
	if _, err := s.Get("sess1", models.ParamTiltingSpeed); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	got, _ := s.Get("sess1", models.ParamMetalTemperature)
	if *got.Lower != 700 {
		t.Errorf("lower = %d after parameter switch, want 700", *got.Lower)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Set("shared", models.ParamTiltingSpeed, SideUpper, "25")
				if _, err := s.Get("shared", models.ParamTiltingSpeed); err != nil {
					t.Errorf("Get() error = %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	got, _ := s.Get("shared", models.ParamTiltingSpeed)
	if *got.Upper != 25 {
		t.Errorf("upper = %d, want 25", *got.Upper)
	}
}

func TestStore_PurgeIdle(t *testing.T) {
	s := New()

	_, _ = s.Get("old", models.ParamMetalTemperature)
	// Backdate the session so it qualifies as idle.
	s.mu.Lock()
	s.sessions["old"].lastSeen = time.Now().UTC().Add(-2 * time.Hour)
	s.mu.Unlock()
	_, _ = s.Get("fresh", models.ParamMetalTemperature)

	if removed := s.PurgeIdle(time.Hour); removed != 1 {
		t.Errorf("PurgeIdle() removed = %d, want 1", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
