// ABOUTME: Seed synonym table for keyword credit below exact-match
// ABOUTME: Covers common development task vocabulary; extensible via Options
package scoring

// defaultSynonyms maps each token to equivalents that earn synonym-level
// credit. The table is a minimum seed of common dev-task vocabulary, not
// an attempt at a thesaurus; callers extend it through Options.Synonyms.
var defaultSynonyms = map[string][]string{
	"deploy":   {"release", "ship", "publish", "rollout"},
	"release":  {"deploy", "ship", "publish"},
	"ship":     {"deploy", "release", "publish"},
	"test":     {"verify", "check", "validate"},
	"verify":   {"test", "check", "validate"},
	"check":    {"test", "verify", "lint"},
	"validate": {"test", "verify", "check"},
	"build":    {"compile", "bundle", "package"},
	"compile":  {"build"},
	"fix":      {"repair", "debug", "patch"},
	"debug":    {"fix", "troubleshoot", "diagnose"},
	"search":   {"find", "lookup", "query", "grep"},
	"find":     {"search", "lookup", "locate"},
	"delete":   {"remove", "drop", "clean"},
	"remove":   {"delete", "drop", "uninstall"},
	"create":   {"generate", "make", "scaffold", "new"},
	"generate": {"create", "make", "scaffold"},
	"update":   {"upgrade", "refresh", "sync"},
	"upgrade":  {"update", "bump"},
	"docs":     {"documentation", "readme"},
	"document": {"docs", "documentation"},
	"format":   {"lint", "style", "prettify"},
	"lint":     {"format", "check", "style"},
	"review":   {"audit", "inspect", "analyze"},
	"analyze":  {"review", "inspect", "examine"},
	"refactor": {"restructure", "rewrite", "cleanup"},
	"migrate":  {"migration", "port", "convert"},
	"monitor":  {"watch", "observe", "track"},
	"database": {"sql", "postgres", "mysql", "sqlite"},
	"aws":      {"amazon", "cloud"},
	"git":      {"github", "gitlab", "repository"},
	"commit":   {"git", "checkin"},
}

// isSynonym reports whether a and b are synonyms under the given table
func isSynonym(table map[string][]string, a, b string) bool {
	for _, s := range table[a] {
		if s == b {
			return true
		}
	}
	for _, s := range table[b] {
		if s == a {
			return true
		}
	}
	return false
}
