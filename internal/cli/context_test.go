package cli

import (
	"testing"
	"time"
)

func TestParseDateFlag(t *testing.T) {
	t.Run("empty means unset", func(t *testing.T) {
		got, err := ParseDateFlag("", false)
		if err != nil {
			t.Fatalf("ParseDateFlag() failed: %v", err)
		}
		if got != nil {
			t.Errorf("ParseDateFlag(empty) = %v, want nil", got)
		}
	})

	t.Run("bare date", func(t *testing.T) {
		got, err := ParseDateFlag("2025-03-10", false)
		if err != nil {
			t.Fatalf("ParseDateFlag() failed: %v", err)
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("ParseDateFlag() = %v, want %v", got, want)
		}
	})

	t.Run("bare date as end bound covers the whole day", func(t *testing.T) {
		got, err := ParseDateFlag("2025-03-10", true)
		if err != nil {
			t.Fatalf("ParseDateFlag() failed: %v", err)
		}
		if got.Day() != 10 || got.Hour() != 23 || got.Minute() != 59 {
			t.Errorf("ParseDateFlag(endOfDay) = %v, want end of March 10", got)
		}
	})

	t.Run("datetime is taken as-is", func(t *testing.T) {
		got, err := ParseDateFlag("2025-03-10 14:30", true)
		if err != nil {
			t.Fatalf("ParseDateFlag() failed: %v", err)
		}
		want := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("ParseDateFlag() = %v, want %v", got, want)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := ParseDateFlag("next tuesday", false); err == nil {
			t.Error("ParseDateFlag() accepted unparseable input")
		}
	})
}
