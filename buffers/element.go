package buffers

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/assert"
)

// Element is one attribute of a vertex (e.g. a Vec3 normal at an offset of 12 bytes)
// or one field of a uniform buffer.
type Element struct {
	// Location is the shader attribute location. When every element of a layout
	// has location 0 the locations are assigned in order by SetLayout.
	Location uint32
	Offset   int
	ElementType
}

// LayoutFromSizes builds a float layout from component counts, so (3, 3, 2)
// is a vec3, a vec3 and a vec2 at locations 0, 1 and 2.
func LayoutFromSizes(sizes ...int32) []Element {

	layout := make([]Element, len(sizes))
	for i, size := range sizes {

		var t ElementType
		switch size {
		case 1:
			t = DataTypeFloat32
		case 2:
			t = DataTypeVec2
		case 3:
			t = DataTypeVec3
		case 4:
			t = DataTypeVec4
		default:
			assert.T(false, "vertex attributes must have 1 to 4 components, but attribute %d has %d", i, size)
		}

		layout[i] = Element{Location: uint32(i), ElementType: t}
	}

	return layout
}

// ElementType is the type of an element that makes up a buffer (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	// DataTypeStruct is only valid inside uniform buffers
	DataTypeStruct
)

func (dt ElementType) GLType() uint32 {

	switch dt {
	case DataTypeUint32:
		return gl.UNSIGNED_INT
	case DataTypeInt32:
		return gl.INT
	case DataTypeFloat32, DataTypeVec2, DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return gl.FLOAT
	}

	assert.T(false, "ElementType.GLType of type '%s' is not supported", dt.String())
	return 0
}

// IsInteger is true for types that must go through glVertexAttribIPointer
func (dt ElementType) IsInteger() bool {
	return dt == DataTypeUint32 || dt == DataTypeInt32
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 1
	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4
	case DataTypeMat2:
		return 2 * 2
	case DataTypeMat3:
		return 3 * 3
	case DataTypeMat4:
		return 4 * 4
	}

	assert.T(false, "ElementType.CompCount of type '%s' is not supported", dt.String())
	return 0
}

// Size returns the tightly packed size in bytes (e.g. for vec3 its 3*4=12 bytes).
// Every component is 4 bytes.
func (dt ElementType) Size() int32 {
	return dt.CompCount() * 4
}

// MatColumns is the number of columns of a matrix type, and 0 for anything else
func (dt ElementType) MatColumns() uint16 {
	switch dt {
	case DataTypeMat2:
		return 2
	case DataTypeMat3:
		return 3
	case DataTypeMat4:
		return 4
	default:
		return 0
	}
}

// Std140Alignment is the base alignment of a single (non-array) value of this type
// in a layout=std140 block.
func (dt ElementType) Std140Alignment() uint16 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 4
	case DataTypeVec2:
		return 8
	case DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4, DataTypeStruct:
		return 16
	}

	assert.T(false, "Unknown data type passed. DataType '%d'", uint8(dt))
	return 0
}

// Std140Size is the number of bytes a single (non-array) value of this type takes
// in a layout=std140 block. Matrices are stored as arrays of vec4 columns, so a mat3 is 48 bytes.
func (dt ElementType) Std140Size() uint16 {

	if cols := dt.MatColumns(); cols != 0 {
		return cols * 16
	}

	assert.T(dt != DataTypeStruct, "Std140Size of a struct depends on its fields")
	return uint16(dt.Size())
}

func (dt ElementType) String() string {

	switch dt {
	case DataTypeUint32:
		return "uint32"
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"
	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"
	case DataTypeMat2:
		return "Mat2"
	case DataTypeMat3:
		return "Mat3"
	case DataTypeMat4:
		return "Mat4"
	case DataTypeStruct:
		return "Struct"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(dt))
	}
}
