package resolve

// Boxed names for primitives. The names follow the Jython stubs rather
// than the JDK (java.lang.Int, not java.lang.Integer).
var primitiveTypes = map[string]string{
	"int":     "java.lang.Int",
	"byte":    "java.lang.Byte",
	"boolean": "java.lang.Boolean",
	"char":    "java.lang.Char",
	"double":  "java.lang.Double",
	"float":   "java.lang.Float",
	"long":    "java.lang.Long",
	"short":   "java.lang.Short",
}

var pythonTypes = map[string]string{
	"java.lang.String":     "str",
	"List[java.lang.Byte]": "bytearray",
	"java.lang.Int":        "int",
	"java.lang.Long":       "int",
	"java.lang.Short":      "int",
	"java.lang.Byte":       "int",
	"java.lang.Double":     "float",
	"java.lang.Float":      "float",
	"java.lang.Char":       "str",
	"java.lang.Boolean":    "bool",
	"java.lang.List":       "list",
}

// DefaultImports are searched after a file's own imports.
var DefaultImports = []string{"java.lang.*"}

// BoxedName returns the qualified name a primitive resolves to.
func BoxedName(primitive string) (string, bool) {
	name, ok := primitiveTypes[primitive]
	return name, ok
}

// ConvertType maps a qualified name to its Python builtin, or returns it
// unchanged.
func ConvertType(name string) string {
	if py, ok := pythonTypes[name]; ok {
		return py
	}
	return name
}

// Primitives returns the primitive names in the fixed table.
func Primitives() []string {
	return []string{"boolean", "byte", "char", "double", "float", "int", "long", "short"}
}
