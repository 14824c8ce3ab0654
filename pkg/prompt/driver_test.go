package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(fmt.Errorf("wrapped: %w", terminal.InterruptErr)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestDriverFunc(t *testing.T) {
	var seen MultilineConfig
	driver := DriverFunc(func(_ context.Context, cfg MultilineConfig) (string, error) {
		seen = cfg
		return "rect(0, 0, 10, 10);", nil
	})
	got, err := driver.Multiline(context.Background(), MultilineConfig{Message: "Sketch"})
	if err != nil {
		t.Fatalf("multiline: %v", err)
	}
	if got != "rect(0, 0, 10, 10);" || seen.Message != "Sketch" {
		t.Fatalf("unexpected result %q / %#v", got, seen)
	}
}

func TestSurveyDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	driver := NewSurveyDriver(nil, nil)
	if _, err := driver.Multiline(ctx, MultilineConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
