package classify

// Vector labels a class of suspected weakness associated with an
// endpoint.
type Vector string

// The closed set of vector labels.
const (
	VectorIDOR   Vector = "IDOR"
	VectorLFI    Vector = "LFI"
	VectorRedir  Vector = "REDIR"
	VectorXSS    Vector = "XSS"
	VectorSQLI   Vector = "SQLI"
	VectorForm   Vector = "FORM"
	VectorUpload Vector = "UPLOAD"
	VectorCSRF   Vector = "CSRF"
	VectorAdmin  Vector = "ADMIN"
	VectorAPI    Vector = "API"
	VectorAuth   Vector = "AUTH"
	VectorInfo   Vector = "INFO"
	VectorJS     Vector = "JS"
)

// Category names a keyword set used for parameter-based matching.
type Category string

// The five keyword categories, in match precedence order.
const (
	CategoryIDOR  Category = "idor"
	CategoryLFI   Category = "lfi"
	CategoryRedir Category = "redir"
	CategoryXSS   Category = "xss"
	CategorySQLI  Category = "sqli"
)

// Categories lists the keyword categories in the fixed order labels
// are assigned.
var Categories = []Category{
	CategoryIDOR,
	CategoryLFI,
	CategoryRedir,
	CategoryXSS,
	CategorySQLI,
}

// categoryVectors maps each keyword category to its label.
var categoryVectors = map[Category]Vector{
	CategoryIDOR:  VectorIDOR,
	CategoryLFI:   VectorLFI,
	CategoryRedir: VectorRedir,
	CategoryXSS:   VectorXSS,
	CategorySQLI:  VectorSQLI,
}

// defaultKeywords holds the builtin keyword set per category. A
// category's effective set is this union any user-supplied override.
var defaultKeywords = map[Category][]string{
	CategoryIDOR:  {"id", "user_id", "account_id", "uuid", "guid", "userid"},
	CategoryLFI:   {"file", "path", "lang", "page", "include", "dir", "folder", "template"},
	CategoryRedir: {"url", "redirect", "next", "redir", "return", "to", "goto", "link"},
	CategoryXSS:   {"q", "query", "search", "keyword", "name", "message", "input", "content"},
	CategorySQLI:  {"category", "sort", "order", "filter", "where", "select"},
}

// DefaultKeywords returns a copy of the builtin keyword set for a
// category.
func DefaultKeywords(cat Category) []string {
	words := defaultKeywords[cat]
	out := make([]string, len(words))
	copy(out, words)
	return out
}
