package pderun

import (
	"io/fs"

	"github.com/goliatone/go-pderun/pkg/preprocess/javawrap"
)

// EmbeddedTemplates exposes the built-in class templates so callers can copy
// or extend them and pass the result through javawrap.WithRenderer.
func EmbeddedTemplates() fs.FS {
	return javawrap.TemplatesFS()
}
