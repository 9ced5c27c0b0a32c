package java

var reservedParameterNames = map[string]bool{
	"from":   true,
	"import": true,
	"in":     true,
	"def":    true,
}

type Parameter struct {
	Name    string
	Type    Type
	Varargs bool
}

// PythonName is Name with a trailing underscore when Name is a Python
// keyword that cannot name a parameter.
func (p Parameter) PythonName() string {
	return PythonParameterName(p.Name)
}

func PythonParameterName(name string) string {
	if reservedParameterNames[name] {
		return name + "_"
	}
	return name
}

func (p Parameter) String() string {
	if p.Name != "" {
		return p.Type.String() + " " + p.Name
	}
	return p.Type.String()
}
