package resultstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Encode renders v as a result blob. Numbers and strings use their path
// segment text; lists, maps and objects are written as JSON.
func Encode(v cty.Value) ([]byte, error) {
	if v == cty.NilVal || v.IsNull() || !v.IsWhollyKnown() {
		return nil, fmt.Errorf("cannot store a null or unknown result")
	}
	switch ty := v.Type(); {
	case ty.Equals(cty.Number), ty.Equals(cty.String):
		s, err := paramtype.Format(v)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case ty.Equals(cty.Bool):
		return []byte(strconv.FormatBool(v.True())), nil
	}
	return ctyjson.Marshal(v, v.Type())
}

// Decode parses a result blob. Text that is a finite decimal number, once
// surrounding whitespace is trimmed, becomes a cty.Number; everything else
// is returned verbatim as a cty.String.
func Decode(raw []byte) cty.Value {
	text := string(raw)
	trimmed := strings.TrimSpace(text)
	if trimmed != "" {
		if n, err := cty.ParseNumberVal(trimmed); err == nil {
			if !n.AsBigFloat().IsInf() {
				return n
			}
		}
	}
	return cty.StringVal(text)
}
