package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/imgpick/pkg/imgpick"
)

func sampleResult() imgpick.Result {
	return imgpick.Result{
		RunID:     uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2"),
		Column:    "image",
		Delimiter: "semicolon",
		Rows:      4,
		Total:     4,
		Copied:    2,
		NotFound:  []string{"zeta.jpg", "alpha.jpg"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out/report.json", FormatJSON, false},
		{"report.YAML", FormatYAML, false},
		{"report.yml", FormatYAML, false},
		{"report.txt", FormatText, false},
		{"report", FormatText, false},
		{"report.pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummary(t *testing.T) {
	r := sampleResult()
	assert.Equal(t, "Copied 2 images.\nNot found: 2", Summary(r))

	r.DryRun = true
	assert.Equal(t, "Would copy 2 images.\nNot found: 2", Summary(r))

	r.Failed = []imgpick.CopyFailure{{Name: "x.jpg", Err: "denied"}}
	assert.Contains(t, Summary(r), "Failed: 1")
}

func TestRender_Text(t *testing.T) {
	r := sampleResult()
	r.Failed = []imgpick.CopyFailure{{Name: "b.jpg", Err: "denied"}, {Name: "a.jpg", Err: "busy"}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText))

	want := "Copied 2 images.\nNot found: 2\nFailed: 2\n" +
		"\nNot found:\n  alpha.jpg\n  zeta.jpg\n" +
		"\nFailed:\n  a.jpg: busy\n  b.jpg: denied\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_TextNothingMissing(t *testing.T) {
	r := sampleResult()
	r.NotFound = []string{}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText))
	assert.Equal(t, "Copied 2 images.\nNot found: 0\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", decoded["run_id"])
	assert.Equal(t, "semicolon", decoded["delimiter"])
	assert.Equal(t, float64(2), decoded["copied"])
	assert.Equal(t, []interface{}{"alpha.jpg", "zeta.jpg"}, decoded["not_found"])
	assert.NotContains(t, decoded, "failed")
}

func TestRender_JSONEmptyNotFoundIsArray(t *testing.T) {
	r := sampleResult()
	r.NotFound = nil

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatJSON))
	assert.Contains(t, buf.String(), `"not_found": []`)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), FormatYAML))

	var decoded struct {
		RunID    string   `yaml:"run_id"`
		Column   string   `yaml:"column"`
		Copied   int      `yaml:"copied"`
		NotFound []string `yaml:"not_found"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", decoded.RunID)
	assert.Equal(t, "image", decoded.Column)
	assert.Equal(t, 2, decoded.Copied)
	assert.Equal(t, []string{"alpha.jpg", "zeta.jpg"}, decoded.NotFound)
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	r := sampleResult()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText))
	assert.Equal(t, []string{"zeta.jpg", "alpha.jpg"}, r.NotFound)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"report.json", "report.yaml", "report.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, sampleResult()))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "alpha.jpg")
		})
	}
}

func TestWriteFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.Error(t, WriteFile(path, sampleResult()))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is created for an unsupported format")
}

func TestEncode_RejectsText(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, map[string]int{"rows": 1}, FormatText))

	require.NoError(t, Encode(&buf, map[string]int{"rows": 1}, FormatYAML))
	assert.Equal(t, "rows: 1\n", buf.String())
}
