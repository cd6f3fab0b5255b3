// Package assets embeds the static data the server ships with: the default
// target word list and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed wordlist.json sql/*.sql
var FS embed.FS

// Wordlist returns the raw embedded JSON word list.
func Wordlist() ([]byte, error) {
	return FS.ReadFile("wordlist.json")
}

// Migrations returns the embedded migration directory, rooted at sql/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
