// Package convention captures coding-convention knowledge that is not part
// of the language itself, such as which functions reflect over property
// names at runtime.
package convention

// DefaultRenameFunctions are the property-reflection helpers recognized out
// of the box. A string literal passed as their first argument names a
// property that survives renaming and minification, so it counts as a read.
var DefaultRenameFunctions = []string{
	"goog.reflect.objectProperty",
	"JSCompiler_renameProperty",
}

// Convention answers naming-convention questions for a configured set of
// rename functions.
type Convention struct {
	renameFns map[string]bool
}

// New builds a Convention recognizing the given rename functions. A nil or
// empty list falls back to DefaultRenameFunctions.
func New(renameFunctions []string) *Convention {
	if len(renameFunctions) == 0 {
		renameFunctions = DefaultRenameFunctions
	}
	fns := make(map[string]bool, len(renameFunctions))
	for _, fn := range renameFunctions {
		fns[fn] = true
	}
	return &Convention{renameFns: fns}
}

// IsPropertyRenameFunction reports whether the qualified name refers to a
// function whose string-literal first argument names a property.
func (c *Convention) IsPropertyRenameFunction(qualifiedName string) bool {
	return c.renameFns[qualifiedName]
}
