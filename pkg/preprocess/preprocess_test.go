package preprocess_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-pderun/pkg/preprocess"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

func TestTranslationError_MatchesSentinel(t *testing.T) {
	err := error(&preprocess.TranslationError{Name: "App", Line: 3, Column: 7, Message: "unexpected }"})
	if !errors.Is(err, sketch.ErrTranslation) {
		t.Fatalf("expected ErrTranslation match")
	}
	if got := sketch.KindOf(err); got != sketch.KindTranslation {
		t.Fatalf("kind mismatch: %q", got)
	}
	if got := err.Error(); got != "preprocess App:3:7: unexpected }" {
		t.Fatalf("message mismatch: %q", got)
	}
}

func TestTranslationError_Fallbacks(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &preprocess.TranslationError{Err: cause}
	if got := err.Error(); got != "preprocess: exit status 1" {
		t.Fatalf("message mismatch: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if got := (&preprocess.TranslationError{}).Error(); got != "preprocess: translation failed" {
		t.Fatalf("message mismatch: %q", got)
	}
}

func TestParseDiagnostic(t *testing.T) {
	cases := []struct {
		line string
		want preprocess.TranslationError
	}{
		{"12:4: unexpected token", preprocess.TranslationError{Name: "App", Line: 12, Column: 4, Message: "unexpected token"}},
		{"App.java:9: missing brace", preprocess.TranslationError{Name: "App", Line: 9, Message: "missing brace"}},
		{"  something broke  ", preprocess.TranslationError{Name: "App", Message: "something broke"}},
	}
	for _, tc := range cases {
		got := preprocess.ParseDiagnostic("App", tc.line)
		if diff := cmp.Diff(tc.want, *got, cmpopts.IgnoreFields(preprocess.TranslationError{}, "Err")); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestFunc(t *testing.T) {
	p := preprocess.Func(func(_ context.Context, name, source string) (string, error) {
		return name + ":" + source, nil
	})
	got, err := p.Preprocess(context.Background(), "App", "body")
	if err != nil || got != "App:body" {
		t.Fatalf("unexpected result %q %v", got, err)
	}
}
