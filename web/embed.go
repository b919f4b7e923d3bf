// Package web holds the assets shared by the preview server and the static
// exporter. The server mounts StaticFS under /static/ and the exporter
// copies it to <out>/static/.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed static
var embedded embed.FS

var staticRoot = mustSub(embedded, "static")

// StaticFS returns the embedded assets rooted at the static/ directory,
// ready for http.FS or fs.WalkDir.
func StaticFS() fs.FS {
	return staticRoot
}

// mustSub panics if dir is not a valid path inside fsys. dir is a
// compile-time constant, so a failure is a build defect.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("web: embedded %s: %v", dir, err))
	}
	return sub
}
