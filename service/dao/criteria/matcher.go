package criteria

import (
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao"
)

// Match reports whether value satisfies every parameter named name.
// Parameters with other names are ignored.
func Match(name, value string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != name {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if value != actual {
				return false
			}
		case []string:
			matched := false
			for _, candidate := range actual {
				if value == candidate {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}

// MatchRun applies the run filters: source and digest.
func MatchRun(run *model.Run, parameters []*dao.Parameter) bool {
	return Match(dao.ParameterSource, run.Source, parameters) &&
		Match(dao.ParameterDigest, run.Digest, parameters)
}
