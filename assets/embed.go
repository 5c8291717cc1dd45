// assets/embed.go
//
// Files compiled into the binary:
//   - words.txt: the default list of candidate target words.
//   - templates/*.html: the server-rendered game page.
package assets

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed words.txt templates/*.html
var FS embed.FS

// WordList returns the embedded word list file.
func WordList() (fs.File, error) {
	return FS.Open("words.txt")
}

// Templates parses the embedded HTML templates.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "templates/*.html")
}
