package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and dropping pairs with an empty key or value.
func StringFields(pairs map[string]string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs))
	for key, value := range pairs {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// WithCommonFields attaches the provider and model fields used on every AI
// log line. A nil logger becomes a no-op logger to keep callers panic-free.
func WithCommonFields(log *zap.Logger, provider, model string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	fields := StringFields(map[string]string{
		FieldProvider: provider,
		FieldModel:    model,
	})
	if len(fields) == 0 {
		return log
	}

	return log.With(fields...)
}
