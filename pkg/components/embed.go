package components

import (
	"embed"
	"io/fs"
)

//go:embed templates/forms/*.tmpl
var templateFS embed.FS

//go:embed static/snowform.css
var staticFS embed.FS

// TemplatesFS exposes the embedded component templates rooted at the
// directory holding forms/.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// StylesheetFS exposes the default stylesheet as snowform.css. It is only
// needed when the default components are in use.
func StylesheetFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
