package java

import "strings"

// Import is one import declaration. Path never carries the ".*" suffix of
// a wildcard import.
type Import struct {
	Path     string
	Wildcard bool
	Static   bool
}

// PackageName is the package an import draws names from: the path of a
// wildcard import, or the path minus its last segment for a single type.
func (i Import) PackageName() string {
	if i.Wildcard {
		return i.Path
	}
	if j := strings.LastIndexByte(i.Path, '.'); j >= 0 {
		return i.Path[:j]
	}
	return i.Path
}

// TypeName is the simple name a single type import makes visible, or ""
// for a wildcard import.
func (i Import) TypeName() string {
	if i.Wildcard {
		return ""
	}
	if j := strings.LastIndexByte(i.Path, '.'); j >= 0 {
		return i.Path[j+1:]
	}
	return ""
}

func (i Import) String() string {
	var sb strings.Builder
	sb.WriteString("import ")
	if i.Static {
		sb.WriteString("static ")
	}
	sb.WriteString(i.Path)
	if i.Wildcard {
		sb.WriteString(".*")
	}
	return sb.String()
}

// ParseImport parses a dotted import path such as "java.util.*".
func ParseImport(path string) Import {
	if strings.HasSuffix(path, ".*") {
		return Import{Path: strings.TrimSuffix(path, ".*"), Wildcard: true}
	}
	return Import{Path: path}
}
