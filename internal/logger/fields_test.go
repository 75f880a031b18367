package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(map[string]string{
		"provider": "  gemini  ",
		"empty":    "   ",
		"":         "dropped",
	})

	if len(fields) != 1 {
		t.Fatalf("expected a single field, got %d", len(fields))
	}
	if fields[0].Key != "provider" || fields[0].String != "gemini" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}
}

func TestWithCommonFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithCommonFields(zap.New(core), "gemini", "gemini-2.5-flash").Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}

	got := map[string]string{}
	for _, field := range entries[0].Context {
		got[field.Key] = field.String
	}
	if got[FieldProvider] != "gemini" || got[FieldModel] != "gemini-2.5-flash" {
		t.Fatalf("unexpected fields: %v", got)
	}
}

func TestWithCommonFieldsNilLogger(t *testing.T) {
	log := WithCommonFields(nil, "gemini", "model")
	if log == nil {
		t.Fatal("expected a usable logger")
	}
	log.Info("must not panic")
}

func TestWithCommonFieldsEmptyValues(t *testing.T) {
	base := zap.NewNop()
	if got := WithCommonFields(base, "", ""); got != base {
		t.Fatal("empty fields must leave the logger untouched")
	}
}
