package snowform

import (
	"io/fs"

	"github.com/goliatone/go-snowform/pkg/components"
)

// EmbeddedTemplates exposes the built-in component templates so callers can
// copy or extend them without importing the components package.
func EmbeddedTemplates() fs.FS {
	return components.TemplatesFS()
}

// StylesheetFS exposes snowform.css for serving next to rendered forms.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(snowform.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return components.StylesheetFS()
}
