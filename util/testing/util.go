package testing_util

import (
	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/util"
)

// Attrs builds row attributes with the given creation timestamp and no
// expiration, the common shape across storage tests.
func Attrs(createTS int64) row.Attributes {
	return row.Attributes{
		CreateTS: util.Some(createTS),
	}
}

// NoAttrs builds empty row attributes, which carry no size footprint.
func NoAttrs() row.Attributes {
	return row.Attributes{}
}
