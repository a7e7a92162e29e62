package classify

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newDefault(t *testing.T) *Classifier {
	t.Helper()
	return New(Config{}, nil)
}

func params(names ...string) map[string][]string {
	p := make(map[string][]string, len(names))
	for _, n := range names {
		p[n] = []string{"1"}
	}
	return p
}

// =============================================================================
// Label Assignment Tests
// =============================================================================

func TestClassify_ParameterCategories(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		name string
		page Page
		want []Vector
	}{
		{
			name: "idor param",
			page: Page{URL: "https://example.com/user?id=1", Params: params("id")},
			want: []Vector{VectorIDOR},
		},
		{
			name: "lfi param",
			page: Page{URL: "https://example.com/view?file=a.txt", Params: params("file")},
			want: []Vector{VectorLFI},
		},
		{
			name: "redirect param",
			page: Page{URL: "https://example.com/out?url=x", Params: params("url")},
			want: []Vector{VectorRedir},
		},
		{
			name: "xss param",
			page: Page{URL: "https://example.com/s?q=hi", Params: params("q")},
			want: []Vector{VectorXSS},
		},
		{
			name: "sqli param",
			page: Page{URL: "https://example.com/items?sort=asc", Params: params("sort")},
			want: []Vector{VectorSQLI},
		},
		{
			name: "multiple categories in fixed order",
			page: Page{URL: "https://example.com/p?id=1&file=x&sort=asc", Params: params("id", "file", "sort")},
			want: []Vector{VectorIDOR, VectorLFI, VectorSQLI},
		},
		{
			name: "case insensitive param match",
			page: Page{URL: "https://example.com/u?ID=1", Params: params("ID")},
			want: []Vector{VectorIDOR},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.page)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_FormAndUploadSignals(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		name string
		page Page
		want []Vector
	}{
		{
			name: "form only",
			page: Page{URL: "https://example.com/contact", HasForm: true},
			want: []Vector{VectorForm},
		},
		{
			name: "form with upload",
			page: Page{URL: "https://example.com/upload", HasForm: true, HasUpload: true},
			want: []Vector{VectorForm, VectorUpload},
		},
		{
			name: "params plus form",
			page: Page{URL: "https://example.com/s?q=x", Params: params("q"), HasForm: true},
			want: []Vector{VectorXSS, VectorForm},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.page)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_DefaultsAndFallbacks(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		name string
		page Page
		want []Vector
	}{
		{
			name: "unmatched param defaults to XSS",
			page: Page{URL: "https://example.com/p?foo=bar", Params: params("foo")},
			want: []Vector{VectorXSS},
		},
		{
			name: "plain page falls back to INFO",
			page: Page{URL: "https://example.com/about"},
			want: []Vector{VectorInfo},
		},
		{
			name: "empty params map falls back to INFO",
			page: Page{URL: "https://example.com/about", Params: map[string][]string{}},
			want: []Vector{VectorInfo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.page)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_PathLabels(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		name string
		page Page
		want []Vector
	}{
		{
			name: "admin path additive",
			page: Page{URL: "https://example.com/admin/users?id=5", Params: params("id")},
			want: []Vector{VectorIDOR, VectorAdmin},
		},
		{
			name: "dashboard path",
			page: Page{URL: "https://example.com/dashboard"},
			want: []Vector{VectorAdmin},
		},
		{
			name: "api path",
			page: Page{URL: "https://example.com/api/v1/users"},
			want: []Vector{VectorAPI},
		},
		{
			name: "graphql path",
			page: Page{URL: "https://example.com/graphql"},
			want: []Vector{VectorAPI},
		},
		{
			name: "login path",
			page: Page{URL: "https://example.com/login", HasForm: true},
			want: []Vector{VectorForm, VectorAuth},
		},
		{
			name: "admin api auth stack",
			page: Page{URL: "https://example.com/admin/api/auth"},
			want: []Vector{VectorAdmin, VectorAPI, VectorAuth},
		},
		{
			name: "path match is case insensitive",
			page: Page{URL: "https://example.com/Admin/Panel"},
			want: []Vector{VectorAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.page)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_ScriptShortCircuits(t *testing.T) {
	c := newDefault(t)

	// IsScript wins over everything, including params and admin paths.
	page := Page{
		URL:      "https://example.com/admin/app.js?id=1",
		Params:   params("id"),
		HasForm:  true,
		IsScript: true,
	}
	got := c.Classify(page)
	want := []Vector{VectorJS}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classify() = %v, want %v", got, want)
	}
}

func TestClassify_EveryPageGetsALabel(t *testing.T) {
	c := newDefault(t)

	pages := []Page{
		{URL: "https://example.com/"},
		{URL: "https://example.com/a?x=1", Params: params("x")},
		{URL: "https://example.com/b", HasForm: true},
		{URL: "https://example.com/c.js", IsScript: true},
		{URL: "://broken"},
	}
	for _, p := range pages {
		if got := c.Classify(p); len(got) == 0 {
			t.Errorf("Classify(%q) returned no labels", p.URL)
		}
	}
}

// =============================================================================
// Override Tests
// =============================================================================

func TestNew_FileOverridesMergeWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xss.txt")
	if err := os.WriteFile(path, []byte("# extra xss params\nfoo\nComment_Text\n"), 0644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c := New(Config{
		OverrideFiles: map[Category]string{CategoryXSS: path},
	}, nil)

	// Override keyword now matches.
	got := c.Classify(Page{URL: "https://example.com/p?foo=bar", Params: params("foo")})
	if !reflect.DeepEqual(got, []Vector{VectorXSS}) {
		t.Errorf("Classify() with override = %v, want [XSS]", got)
	}

	// Lowercased on load.
	got = c.Classify(Page{URL: "https://example.com/p?comment_text=hi", Params: params("comment_text")})
	if !reflect.DeepEqual(got, []Vector{VectorXSS}) {
		t.Errorf("Classify() lowercased override = %v, want [XSS]", got)
	}

	// Defaults survive the merge.
	got = c.Classify(Page{URL: "https://example.com/s?q=x", Params: params("q")})
	if !reflect.DeepEqual(got, []Vector{VectorXSS}) {
		t.Errorf("Classify() default after merge = %v, want [XSS]", got)
	}
}

func TestNew_MissingOverrideFallsBackToDefaults(t *testing.T) {
	c := New(Config{
		OverrideFiles: map[Category]string{
			CategoryIDOR: filepath.Join(t.TempDir(), "nonexistent.txt"),
		},
	}, nil)

	got := c.Classify(Page{URL: "https://example.com/u?id=1", Params: params("id")})
	if !reflect.DeepEqual(got, []Vector{VectorIDOR}) {
		t.Errorf("Classify() after failed override load = %v, want [IDOR]", got)
	}
}

func TestNew_EmptyOverrideFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqli.txt")
	if err := os.WriteFile(path, []byte("# only comments\n\n"), 0644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c := New(Config{
		OverrideFiles: map[Category]string{CategorySQLI: path},
	}, nil)

	got := c.Classify(Page{URL: "https://example.com/i?sort=asc", Params: params("sort")})
	if !reflect.DeepEqual(got, []Vector{VectorSQLI}) {
		t.Errorf("Classify() after empty override = %v, want [SQLI]", got)
	}
}

func TestNew_InlineOverrides(t *testing.T) {
	c := New(Config{
		Overrides: map[Category][]string{
			CategoryRedir: {"Dest"},
		},
	}, nil)

	got := c.Classify(Page{URL: "https://example.com/go?dest=x", Params: params("dest")})
	if !reflect.DeepEqual(got, []Vector{VectorRedir}) {
		t.Errorf("Classify() inline override = %v, want [REDIR]", got)
	}
}

func TestKeywords(t *testing.T) {
	c := newDefault(t)

	words := c.Keywords(CategoryIDOR)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	for _, w := range DefaultKeywords(CategoryIDOR) {
		if !set[w] {
			t.Errorf("Keywords(idor) missing default %q", w)
		}
	}
}
