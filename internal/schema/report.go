package schema

import (
	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// Issue is one validation problem.
type Issue struct {
	Entity  string      // "graph", "vertex person", "edge person_knows_person"
	Code    errors.Code // machine-readable code
	Message string
}

// Report lists the validation problems of g and its members. An empty
// report means g is validated.
//
// Member problems are reported against the member. The remaining graph
// problems (bad name or prefix, dangling edge endpoints) are reported
// against the graph.
func Report(g *info.GraphInfo) []Issue {
	var issues []Issue
	reported := make(map[error]bool)
	for _, v := range g.VertexInfos() {
		if err := v.Validate(); err != nil {
			reported[err] = true
			issues = append(issues, issue("vertex "+v.Label(), err))
		}
	}
	for _, e := range g.EdgeInfos() {
		if err := e.Validate(); err != nil {
			reported[err] = true
			issues = append(issues, issue("edge "+e.Key().String(), err))
		}
	}

	err := g.Validate()
	if err == nil {
		return issues
	}
	for _, err := range unjoin(err) {
		if !reported[err] {
			issues = append(issues, issue("graph", err))
		}
	}
	return issues
}

func issue(entity string, err error) Issue {
	return Issue{Entity: entity, Code: errors.GetCode(err), Message: errors.UserMessage(err)}
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
