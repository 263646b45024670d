// Package yamlconfig implements config.Loader for YAML declaration files.
// It accepts the same declarations as the HCL loader, with type expressions
// written as strings:
//
//	parameters:
//	  - name: Config
//	    params:
//	      - name: read_length
//	        type: int
//	        default: 150
//	      - name: method_name
//	        type: enum("bwa", "minimap2")
//	        default: bwa
//	sweeps:
//	  - name: accuracy
//	    targets: [Config]
//	    axes:
//	      - name: read_length
//	        values: [50, 100]
package yamlconfig
