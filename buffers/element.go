package buffers

import (
	"fmt"

	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/backend"
)

// Element represents an element that makes up a vertex (e.g. Vec3 at an offset of 12 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the type of an element thats makes up a vertex (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeFloat32
	DataTypeVec2
	DataTypeVec3
)

func (dt ElementType) GLType() uint32 {

	switch dt {
	case DataTypeFloat32:
		fallthrough
	case DataTypeVec2:
		fallthrough
	case DataTypeVec3:
		return backend.Float

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeFloat32:
		return 1
	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompCount() * 4
}

func (dt ElementType) String() string {

	switch dt {
	case DataTypeFloat32:
		return "float32"
	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	default:
		return "Unknown"
	}
}

// Layout is the interleaved attribute layout of a vertex buffer.
// Element i is bound to attribute location i.
type Layout struct {
	Elements []Element
	// Stride is the size in bytes of one vertex
	Stride int32
}

// NewLayout computes offsets and stride for the given elements in order
func NewLayout(elements ...Element) Layout {

	l := Layout{Elements: elements}
	for i := 0; i < len(l.Elements); i++ {

		l.Elements[i].Offset = int(l.Stride)
		l.Stride += l.Elements[i].Size()
	}

	return l
}

// FloatCount is the number of floats per vertex
func (l Layout) FloatCount() int {
	return int(l.Stride / 4)
}

func (l Layout) String() string {
	return fmt.Sprintf("Layout{Stride: %d, Elements: %v}", l.Stride, l.Elements)
}

var (
	// Position, normal/color
	layoutPosNormal = NewLayout(
		Element{ElementType: DataTypeVec3},
		Element{ElementType: DataTypeVec3},
	)

	// Position, normal/color, UV0
	layoutPosNormalUv = NewLayout(
		Element{ElementType: DataTypeVec3},
		Element{ElementType: DataTypeVec3},
		Element{ElementType: DataTypeVec2},
	)
)

// LayoutFor returns the 8 float layout when hasTexCoords is true, otherwise the 6 float one
func LayoutFor(hasTexCoords bool) Layout {

	if hasTexCoords {
		return layoutPosNormalUv
	}

	return layoutPosNormal
}
