// Package blob stores attachment bytes and hands back the URL recorded on
// the submission.
package blob

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Uploader stores one object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// KeyPrefix is the folder every attachment object is stored under.
const KeyPrefix = "attachments"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Key builds a unique object key for filename, keeping a readable name at
// the end so downloads get a sensible default filename.
func Key(filename string) string {
	return path.Join(KeyPrefix, ulid.Make().String(), SanitizeName(filename))
}

// SanitizeName reduces filename to a safe single path element.
func SanitizeName(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
