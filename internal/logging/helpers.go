package logging

import "github.com/goliatone/go-blogkit/pkg/interfaces"

// WithFields returns a child of logger carrying fields, such as the slug or
// content path a pipeline step works on. Fields with a blank key are dropped.
// Loggers without FieldsLogger support are returned as is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return nil
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}

	kept := make(map[string]any, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		kept[key] = value
	}
	if len(kept) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(kept)
}
