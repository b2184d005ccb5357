// Package objectkey derives deterministic storage keys for published assets.
package objectkey

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultFolder is the destination namespace used when the caller does
	// not supply one.
	DefaultFolder = "category-banners"

	// DefaultExtension is assumed when the original filename carries no
	// extension.
	DefaultExtension = "jpg"
)

// Generator builds storage keys of the form {folder}/{name}.{ext}. Key
// construction is deterministic given folder, name and the original
// filename; a fresh random name is generated only when the caller supplies
// none.
type Generator struct {
	// Folder used when GenerateKey is called with an empty folder.
	Folder string

	// NewName produces a unique name for keys without an explicit one.
	NewName func() string
}

// New returns a Generator with the default folder and uuid-based names.
func New() *Generator {
	return &Generator{
		Folder:  DefaultFolder,
		NewName: uuid.NewString,
	}
}

// GenerateKey builds the storage key for an upload. folder and name fall
// back to the generator defaults when empty; the extension is derived from
// originalName. The result is always a valid storage key: non-empty
// segments, no path traversal.
func (g *Generator) GenerateKey(folder, name, originalName string) string {
	if folder == "" {
		folder = g.Folder
	}
	if name == "" {
		name = g.NewName()
	}
	return fmt.Sprintf("%s/%s.%s",
		sanitizePathComponent(folder),
		sanitizePathComponent(name),
		Extension(originalName))
}

// Extension returns the lower-cased last dot-segment of fileName, or
// DefaultExtension when the name has none.
func Extension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return DefaultExtension
	}
	ext := strings.ToLower(fileName[idx+1:])
	ext = sanitizePathComponent(ext)
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// sanitizePathComponent makes a single key segment safe for any storage
// backend: separators and shell-unfriendly characters become underscores,
// and a segment can never reduce to "", "." or "..".
func sanitizePathComponent(component string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	component = replacer.Replace(component)
	component = strings.Trim(component, ".")
	if component == "" {
		component = "_"
	}
	return component
}
