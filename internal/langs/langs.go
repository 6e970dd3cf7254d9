package langs

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/lexers"
)

// DetectLang names the language of a source file by its file name,
// lower-cased as chroma spells it ("c", "c++", "go", "rust"...).
// Unknown files give "".
func DetectLang(filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil { return "" }
	config := lexer.Config()
	if config == nil { return "" }
	return strings.ToLower(config.Name)
}
