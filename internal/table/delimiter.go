package table

import (
	"fmt"
	"strings"
)

// Supported delimiters in detection priority order.
const (
	Tab       = '\t'
	Semicolon = ';'
	Comma     = ','
)

var detectionOrder = []rune{Tab, Semicolon, Comma}

// DetectDelimiter picks the delimiter for a table from one sample line,
// normally the header. The first of tab, semicolon, comma present in the
// line wins; comma is the fallback. This is a substring check, quoting is
// not considered.
func DetectDelimiter(line string) rune {
	for _, d := range detectionOrder {
		if strings.ContainsRune(line, d) {
			return d
		}
	}
	return Comma
}

// ParseDelimiter maps a user-facing delimiter name to its rune.
// "" and "auto" return auto=true. Single-character forms ("\t", ";", ",")
// are accepted as well as the names tab, semicolon and comma.
func ParseDelimiter(name string) (d rune, auto bool, err error) {
	if name == "\t" {
		return Tab, false, nil
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return 0, true, nil
	case "tab", "tsv", `\t`:
		return Tab, false, nil
	case "semicolon", ";":
		return Semicolon, false, nil
	case "comma", "csv", ",":
		return Comma, false, nil
	}
	return 0, false, fmt.Errorf("unsupported delimiter %q (use auto, tab, semicolon or comma)", name)
}

// DelimiterNames lists the values accepted by ParseDelimiter, for flag help
// and shell completion.
func DelimiterNames() []string {
	return []string{"auto", "tab", "semicolon", "comma"}
}
