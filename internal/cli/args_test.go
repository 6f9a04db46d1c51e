package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRequireTablePath(t *testing.T) {
	cmd := &cobra.Command{
		Use: "inspect <table>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireTablePath(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <table>") {
			t.Errorf("expected error to contain 'missing required argument: <table>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		err := RequireTablePath(cmd, []string{"./list.csv"})
		if err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireTablePath(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}

func TestOptionalTablePath(t *testing.T) {
	cmd := &cobra.Command{Use: "copy [table]"}

	for _, args := range [][]string{nil, {"list.csv"}} {
		if err := OptionalTablePath(cmd, args); err != nil {
			t.Errorf("OptionalTablePath(%v) = %v, want nil", args, err)
		}
	}

	err := OptionalTablePath(cmd, []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "accepts at most 1 arg") {
		t.Errorf("expected 'accepts at most 1 arg' error, got: %v", err)
	}
}
