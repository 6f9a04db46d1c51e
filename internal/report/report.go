package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted format names, for flag help and completion.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat validates a format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid argument %q for format (use %s)", name, strings.Join(Formats(), ", "))
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt", ".log", "":
		return FormatText, nil
	}
	return "", fmt.Errorf("cannot infer report format from %q (use .json, .yaml, .yml or .txt)", path)
}

// Render writes result to w in the given format.
func Render(w io.Writer, result imgpick.Result, format Format) error {
	result = normalized(result)

	if format == FormatText || format == "" {
		_, err := io.WriteString(w, Text(result))
		return err
	}
	return Encode(w, result, format)
}

// Encode writes v as indented JSON or YAML. Text has no generic encoding and
// is rejected.
func Encode(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown structured format %q", format)
}

// WriteFile writes result to path, choosing the format from its extension.
func WriteFile(path string, result imgpick.Result) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := Render(f, result, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

// Summary is the short completion message: how many files were copied and
// how many could not be found.
func Summary(result imgpick.Result) string {
	verb := "Copied"
	if result.DryRun {
		verb = "Would copy"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d images.\nNot found: %d", verb, result.Copied, len(result.NotFound))
	if len(result.Failed) > 0 {
		fmt.Fprintf(&b, "\nFailed: %d", len(result.Failed))
	}
	return b.String()
}

// Text renders the summary followed by the not-found and failed lists.
func Text(result imgpick.Result) string {
	result = normalized(result)

	var b strings.Builder
	b.WriteString(Summary(result))
	b.WriteString("\n")

	if len(result.NotFound) > 0 {
		b.WriteString("\nNot found:\n")
		for _, name := range result.NotFound {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(result.Failed) > 0 {
		b.WriteString("\nFailed:\n")
		for _, f := range result.Failed {
			fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Err)
		}
	}
	return b.String()
}

func normalized(result imgpick.Result) imgpick.Result {
	notFound := append([]string{}, result.NotFound...)
	sort.Strings(notFound)
	result.NotFound = notFound

	if len(result.Failed) > 0 {
		failed := append([]imgpick.CopyFailure(nil), result.Failed...)
		sort.Slice(failed, func(i, j int) bool { return failed[i].Name < failed[j].Name })
		result.Failed = failed
	}
	return result
}
