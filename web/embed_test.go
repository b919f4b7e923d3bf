package web

import (
	"io/fs"
	"strings"
	"testing"
)

func TestStaticFS(t *testing.T) {
	data, err := fs.ReadFile(StaticFS(), "preview.css")
	if err != nil {
		t.Fatalf("read preview.css: %v", err)
	}
	for _, class := range []string{".pb-block", ".card", ".btn-primary", ".placeholder"} {
		if !strings.Contains(string(data), class) {
			t.Errorf("preview.css missing %s", class)
		}
	}
}

func TestStaticFS_RootedAtStatic(t *testing.T) {
	if _, err := fs.Stat(StaticFS(), "static"); err == nil {
		t.Error("StaticFS should be rooted inside static/, found nested static/")
	}
	if StaticFS() != StaticFS() {
		t.Error("StaticFS should return the same tree on every call")
	}
}

func TestMustSub_InvalidPathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mustSub with an invalid path should panic")
		}
	}()
	mustSub(embedded, "../outside")
}
