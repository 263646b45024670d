// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses `parameters` and `sweep` blocks and translates them
// into the format-agnostic config model.
//
// A declaration file looks like:
//
//	parameters "Config" {
//	  param "read_length" {
//	    type    = int
//	    default = 150
//	  }
//	  param "method_name" {
//	    type    = enum("bwa", "minimap2")
//	    default = "bwa"
//	  }
//	}
//
//	parameters "Precision" {
//	  file_ending = ".txt"
//	  param "config" { type = Config }
//	  param "file" {
//	    type    = enum("precision")
//	    default = "precision"
//	  }
//	}
//
//	sweep "accuracy" {
//	  targets = ["Precision"]
//	  axis "read_length" { values = [50, 100, 150] }
//	}
//
// Type expressions are `int`, `float`, `string`, `enum(...)`, `union(...)`
// and the bare name of another parameters block.
package hcl
