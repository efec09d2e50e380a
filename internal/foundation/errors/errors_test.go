package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "assemble.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "assemble.yaml" {
			t.Errorf("expected context file=assemble.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := DataError("bad data").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryData) {
			t.Error("expected error to have data category")
		}
		if !err.IsFatal() {
			t.Error("expected data error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := RenderError("could not assemble").Build()
		wrapped := fmt.Errorf("page index.html: %w", inner)

		if GetCategory(wrapped) != CategoryRender {
			t.Errorf("expected render category, got %s", GetCategory(wrapped))
		}
		if GetSeverity(wrapped) != SeverityError {
			t.Errorf("expected error severity, got %s", GetSeverity(wrapped))
		}
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := errors.New("plain")
		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(err))
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryFileSystem, "read failure").
			Warning().
			WithContext("path", "src/data/site.json").
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		if err.Error() != "[filesystem:warning] read failure: original error" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"DataError", DataError("test"), CategoryData, SeverityFatal},
			{"MaterialError", MaterialError("test"), CategoryMaterial, SeverityFatal},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityFatal},
			{"RenderError", RenderError("test"), CategoryRender, SeverityError},
			{"UnsupportedError", UnsupportedError("test"), CategoryUnsupported, SeverityError},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context merge", func(t *testing.T) {
		ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
		ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

		merged := ctx1.Merge(ctx2)

		value1, _ := merged.GetString("key1")
		value2, _ := merged.GetString("key2")
		shared, _ := merged.GetString("shared")

		if value1 != "value1" || value2 != "value2" {
			t.Errorf("expected both keys to survive merge, got %v", merged)
		}
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
		if _, ok := ctx1.GetString("key2"); ok {
			t.Error("merge must not mutate the receiver")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := RenderError("x").WithContext("file", "a.html").Build()
		derived := base.WithContext("layout", "default")

		if _, ok := base.Context().GetString("layout"); ok {
			t.Error("WithContext must not mutate the original error")
		}
		if layout, _ := derived.Context().GetString("layout"); layout != "default" {
			t.Errorf("expected layout=default, got %q", layout)
		}
	})
}
