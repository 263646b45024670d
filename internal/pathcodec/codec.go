package pathcodec

import (
	"strings"
)

// Separator joins path segments. It is the workflow engine's separator and
// does not depend on the host OS.
const Separator = "/"

// Codec builds templates and concrete paths for schemas, all rooted at one
// data folder.
type Codec struct {
	dataFolder string
}

// New returns a codec that prefixes every path with dataFolder. An empty
// data folder means paths are relative to the working directory; "/" roots
// them at the filesystem root.
func New(dataFolder string) *Codec {
	trimmed := strings.TrimRight(dataFolder, Separator)
	if trimmed == "" && dataFolder != "" {
		trimmed = Separator
	}
	return &Codec{dataFolder: trimmed}
}

// DataFolder returns the configured prefix without a trailing separator,
// except for the root itself.
func (c *Codec) DataFolder() string { return c.dataFolder }

// prefix is the data folder as it leads a path with at least one segment.
func (c *Codec) prefix() string {
	if c.dataFolder == "" || c.dataFolder == Separator {
		return c.dataFolder
	}
	return c.dataFolder + Separator
}

// join assembles segments, the schema's optional file name segment and its
// file ending into one path under the data folder.
func (c *Codec) join(segments []string, fileName, fileEnding string) string {
	parts := append([]string(nil), segments...)
	if fileName != "" {
		parts = append(parts, fileName)
	}
	if len(parts) == 0 {
		return c.dataFolder + fileEnding
	}
	return c.prefix() + strings.Join(parts, Separator) + fileEnding
}
