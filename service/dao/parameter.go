package dao

// Parameter narrows a List call. Value is a string or a []string of
// accepted values.
type Parameter struct {
	Name  string
	Value interface{}
}

// Known parameter names.
const (
	ParameterSource = "Source"
	ParameterDigest = "Digest"
)

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
