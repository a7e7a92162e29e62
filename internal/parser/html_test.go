package parser

import (
	"reflect"
	"testing"
)

// =============================================================================
// Link Extraction Tests
// =============================================================================

func TestParse_Links(t *testing.T) {
	html := `
		<html><body>
			<a href="/page1">Page 1</a>
			<a href="https://example.com/page2">Page 2</a>
			<a href="page3">Page 3</a>
			<a href="https://other.com/external">External</a>
			<a href="#section">Fragment</a>
			<a href="javascript:void(0)">JS</a>
			<a href="mailto:admin@example.com">Mail</a>
			<a href="tel:+1555">Phone</a>
			<a href="">Empty</a>
		</body></html>`

	info, err := Parse(html, "https://example.com/dir/index.html")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{
		"https://example.com/page1",
		"https://example.com/page2",
		"https://example.com/dir/page3",
		"https://other.com/external",
	}
	if !reflect.DeepEqual(info.Links, want) {
		t.Errorf("Links = %v, want %v", info.Links, want)
	}
}

func TestParse_OffOriginLinksIncluded(t *testing.T) {
	// Scoping is the crawler's decision, not the parser's.
	html := `<a href="https://elsewhere.org/x">x</a>`

	info, err := Parse(html, "https://example.com/")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(info.Links) != 1 || info.Links[0] != "https://elsewhere.org/x" {
		t.Errorf("Links = %v, want the off-origin link preserved", info.Links)
	}
}

// =============================================================================
// Form Detection Tests
// =============================================================================

func TestParse_Forms(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantForm   bool
		wantUpload bool
	}{
		{
			name:     "no form",
			html:     `<html><body><p>hello</p></body></html>`,
			wantForm: false,
		},
		{
			name:     "plain form",
			html:     `<form action="/submit"><input type="text" name="q"></form>`,
			wantForm: true,
		},
		{
			name:       "upload form",
			html:       `<form enctype="multipart/form-data"><input type="file" name="doc"></form>`,
			wantForm:   true,
			wantUpload: true,
		},
		{
			name:     "file input outside form ignored",
			html:     `<input type="file" name="stray"><form><input type="text"></form>`,
			wantForm: true,
		},
		{
			name:       "second form has upload",
			html:       `<form><input type="text"></form><form><input type="file"></form>`,
			wantForm:   true,
			wantUpload: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.html, "https://example.com/")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if info.HasForm != tt.wantForm {
				t.Errorf("HasForm = %v, want %v", info.HasForm, tt.wantForm)
			}
			if info.HasUpload != tt.wantUpload {
				t.Errorf("HasUpload = %v, want %v", info.HasUpload, tt.wantUpload)
			}
		})
	}
}

// =============================================================================
// Script Extraction Tests
// =============================================================================

func TestParse_Scripts(t *testing.T) {
	html := `
		<html><head>
			<script src="/static/app.js"></script>
			<script src="https://cdn.example.net/lib.js"></script>
			<script>console.log("inline");</script>
		</head></html>`

	info, err := Parse(html, "https://example.com/")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{
		"https://example.com/static/app.js",
		"https://cdn.example.net/lib.js",
	}
	if !reflect.DeepEqual(info.Scripts, want) {
		t.Errorf("Scripts = %v, want %v", info.Scripts, want)
	}
}

func TestParse_MalformedHTML(t *testing.T) {
	// goquery parses tag soup without error; extraction still works.
	html := `<a href="/ok">ok<div><form><input type="file">`

	info, err := Parse(html, "https://example.com/")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(info.Links) != 1 {
		t.Errorf("Links = %v, want one link", info.Links)
	}
	if !info.HasForm || !info.HasUpload {
		t.Errorf("HasForm = %v, HasUpload = %v, want both true", info.HasForm, info.HasUpload)
	}
}

func TestParse_BadDocURL(t *testing.T) {
	if _, err := Parse("<html></html>", "://bad"); err == nil {
		t.Error("Parse() with unparseable doc URL should error")
	}
}
