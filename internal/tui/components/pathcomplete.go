package components

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathCompleter provides Tab completion for filesystem paths. Pressing Tab
// again on an unchanged completion cycles through the remaining matches.
//
// Usage:
//
//	completer := NewPathCompleter(true) // folders only
//	field := NewTextField("source", "Source folder", "").WithCompleter(completer)
type PathCompleter struct {
	matches    []string
	cycleIndex int
	parent     string
	last       string
	dirsOnly   bool
	extensions []string
}

// NewPathCompleter creates a new path completer.
// If dirsOnly is true, only directories are matched.
func NewPathCompleter(dirsOnly bool) *PathCompleter {
	return &PathCompleter{dirsOnly: dirsOnly}
}

// WithExtensions limits file matches to the given extensions (".csv").
// Directories still match so the user can descend into them.
func (c *PathCompleter) WithExtensions(exts ...string) *PathCompleter {
	for _, e := range exts {
		c.extensions = append(c.extensions, strings.ToLower(e))
	}
	return c
}

// Next returns the completion for input. When input is the previous
// completion, the next match is returned instead.
func (c *PathCompleter) Next(input string) string {
	if c.matches != nil && input == c.last {
		c.cycleIndex = (c.cycleIndex + 1) % len(c.matches)
		c.last = c.formatMatch(c.parent, c.matches[c.cycleIndex])
		return c.last
	}

	parent, prefix := splitPath(expandHome(input))
	c.parent = parent
	c.cycleIndex = 0
	c.matches = c.findMatches(parent, prefix)
	if len(c.matches) == 0 {
		c.matches = nil
		return input
	}

	// Several matches sharing more than the typed prefix: extend to the
	// common part first, cycling starts on the following Tab.
	if len(c.matches) > 1 {
		common := longestCommonPrefix(c.matches)
		if len(common) > len(prefix) {
			c.cycleIndex = -1
			c.last = filepath.Join(parent, common)
			return c.last
		}
	}

	c.last = c.formatMatch(parent, c.matches[0])
	return c.last
}

// Reset clears the cycle state. Call this when the user types a non-Tab key.
func (c *PathCompleter) Reset() {
	c.matches = nil
	c.cycleIndex = 0
	c.parent = ""
	c.last = ""
}

func (c *PathCompleter) findMatches(parent, prefix string) []string {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}

	var matches []string
	lowPrefix := strings.ToLower(prefix)

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(strings.ToLower(name), lowPrefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if !c.isDir(parent, entry) && !c.acceptsFile(name) {
			continue
		}
		matches = append(matches, name)
	}

	sort.Strings(matches)
	return matches
}

func (c *PathCompleter) isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(parent, entry.Name()))
		return err == nil && info.IsDir()
	}
	return false
}

func (c *PathCompleter) acceptsFile(name string) bool {
	if c.dirsOnly {
		return false
	}
	if len(c.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (c *PathCompleter) formatMatch(parent, name string) string {
	result := filepath.Join(parent, name)

	info, err := os.Stat(result)
	if err == nil && info.IsDir() {
		result += string(filepath.Separator)
	}

	return result
}

// splitPath splits an input into parent directory and name prefix.
//
//	"./src/com" → ("src", "com")
//	"./src/"    → ("./src", "")
//	"my"        → (".", "my")
//	""          → (".", "")
//	"/"         → ("/", "")
func splitPath(input string) (parent, prefix string) {
	if input == "" || input == "." {
		return ".", ""
	}

	if strings.HasSuffix(input, string(filepath.Separator)) || strings.HasSuffix(input, "/") {
		trimmed := strings.TrimRight(input, `/\`)
		if trimmed == "" {
			return string(filepath.Separator), ""
		}
		return trimmed, ""
	}

	return filepath.Dir(input), filepath.Base(input)
}

func expandHome(input string) string {
	if input != "~" && !strings.HasPrefix(input, "~/") {
		return input
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return input
	}
	return filepath.Join(home, strings.TrimPrefix(input, "~")) + trailingSep(input)
}

func trailingSep(input string) string {
	if input == "~" || strings.HasSuffix(input, "/") {
		return string(filepath.Separator)
	}
	return ""
}

// longestCommonPrefix finds the longest common prefix among strs (case-insensitive).
func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	if len(strs) == 1 {
		return strs[0]
	}

	lowered := make([]string, len(strs))
	for i, s := range strs {
		lowered[i] = strings.ToLower(s)
	}

	first := lowered[0]
	for i := 0; i < len(first); i++ {
		ch := first[i]
		for _, s := range lowered[1:] {
			if i >= len(s) || s[i] != ch {
				return strs[0][:i]
			}
		}
	}
	return strs[0]
}
