package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any
// file. Unknown blocks and attributes are rejected.
type fileRoot struct {
	Parameters []*parametersBlock `hcl:"parameters,block"`
	Sweeps     []*sweepBlock      `hcl:"sweep,block"`
}

// parametersBlock represents a `parameters` block: one parameter schema.
type parametersBlock struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	FileName    string        `hcl:"file_name,optional"`
	FileEnding  string        `hcl:"file_ending,optional"`
	Params      []*paramBlock `hcl:"param,block"`
}

// paramBlock defines a single parameter of a schema.
type paramBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// sweepBlock represents a `sweep` block: target schemas and ordered axes.
type sweepBlock struct {
	Name    string       `hcl:"name,label"`
	Targets []string     `hcl:"targets"`
	Axes    []*axisBlock `hcl:"axis,block"`
}

// axisBlock binds a parameter to one value or a list of values.
type axisBlock struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values"`
}
