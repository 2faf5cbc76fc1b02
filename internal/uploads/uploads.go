// Package uploads saves user-submitted documents and post media under the
// configured uploads directory. Only allow-listed extensions are accepted and
// filenames are disambiguated with a uuid so uploads never overwrite each other.
package uploads

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".mp4": true, ".mov": true, ".webm": true,
	".pdf": true,
}

var ErrDisallowedType = errors.New("uploads: file type not allowed")

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]`)

type Saver struct {
	Dir string
}

func Allowed(filename string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

// MediaType classifies an allowed file for post media rows.
func MediaType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm":
		return "video"
	default:
		return "image"
	}
}

func sanitize(name string) string {
	name = filepath.Base(name)
	return reUnsafe.ReplaceAllString(name, "_")
}

// Save writes the file and returns its public path relative to /static
// (e.g. "uploads/<uuid>_report.pdf"). A nil or empty file yields "" with no error.
func (s *Saver) Save(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", nil
	}
	if !Allowed(fh.Filename) {
		return "", ErrDisallowedType
	}
	name := uuid.NewString() + "_" + sanitize(fh.Filename)
	if err := c.SaveFile(fh, filepath.Join(s.Dir, name)); err != nil {
		return "", err
	}
	return "uploads/" + name, nil
}
