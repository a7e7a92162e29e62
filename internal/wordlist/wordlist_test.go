package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "simple list",
			content: "token\nsession\nref\n",
			want:    []string{"token", "session", "ref"},
		},
		{
			name:    "comments and blanks skipped",
			content: "# custom redirect params\n\nnext_url\n  \n# trailing comment\ndest\n",
			want:    []string{"next_url", "dest"},
		},
		{
			name:    "lowercased",
			content: "Token\nSESSION\n",
			want:    []string{"token", "session"},
		},
		{
			name:    "duplicates removed",
			content: "id\nID\nid\nuid\n",
			want:    []string{"id", "uid"},
		},
		{
			name:    "surrounding whitespace trimmed",
			content: "  token  \n\tsession\t\n",
			want:    []string{"token", "session"},
		},
		{
			name:    "empty file",
			content: "",
			want:    []string{},
		},
		{
			name:    "comments only",
			content: "# nothing here\n# still nothing\n",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "words.txt", tt.content)

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.txt"))
	if err == nil {
		t.Error("Load() on missing file should error")
	}
}

// =============================================================================
// Category File Discovery Tests
// =============================================================================

func TestFindCategoryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "xss.txt", "foo\n")
	writeFile(t, dir, "sqli.txt", "bar\n")
	writeFile(t, dir, "readme.md", "not a wordlist\n")

	files, err := FindCategoryFiles(dir, []string{"idor", "lfi", "redir", "xss", "sqli"})
	if err != nil {
		t.Fatalf("FindCategoryFiles() error = %v", err)
	}

	if len(files) != 2 {
		t.Errorf("FindCategoryFiles() found %d files, want 2", len(files))
	}
	if files["xss"] != filepath.Join(dir, "xss.txt") {
		t.Errorf("xss file = %q, want %q", files["xss"], filepath.Join(dir, "xss.txt"))
	}
	if _, ok := files["idor"]; ok {
		t.Error("FindCategoryFiles() mapped idor with no idor.txt present")
	}
}

func TestFindCategoryFiles_MissingDir(t *testing.T) {
	_, err := FindCategoryFiles(filepath.Join(t.TempDir(), "nope"), []string{"xss"})
	if err == nil {
		t.Error("FindCategoryFiles() on missing directory should error")
	}
}
