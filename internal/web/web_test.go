package web

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
)

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	for _, page := range []string{"login.html", "sign_up.html", "index.html", "new_task.html", "profile.html", "error.html"} {
		if tmpl.Lookup(page) == nil {
			t.Errorf("page %s not parsed", page)
		}
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "error.html", map[string]any{"Title": "<boom>"})
	if err != nil {
		t.Fatalf("execute error.html: %v", err)
	}
	if strings.Contains(buf.String(), "<boom>") {
		t.Error("title not escaped")
	}
}

func TestStatic(t *testing.T) {
	if _, err := fs.Stat(Static(), "style.css"); err != nil {
		t.Errorf("style.css missing: %v", err)
	}
}
