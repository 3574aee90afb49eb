package buffers

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/wienergl/wiener/assert"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var ubLog = logging.Module("UniformBuffer")

type UniformBufferFieldInput struct {
	Id   uint16
	Type ElementType
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint16

	// Subfields is used when type is a struct, in which case it holds the fields of the struct.
	// Ids do not have to be unique across structs.
	Subfields []UniformBufferFieldInput
}

type UniformBufferField struct {
	Id            uint16
	AlignedOffset uint16
	Count         uint16
	Type          ElementType
}

type UniformBuffer struct {
	Id uint32
	// Size is the allocated memory in bytes on the GPU for this uniform buffer
	Size   uint32
	Usage  BufUsage
	Fields []UniformBufferField
}

func (ub *UniformBuffer) Bind() {
	logging.Trace(ubLog, "Binding", "id", ub.Id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.Id)
}

func (ub *UniformBuffer) UnBind() {
	logging.Trace(ubLog, "Unbinding", "id", ub.Id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (ub *UniformBuffer) SetUsage(usage BufUsage) {
	ub.Usage = usage
}

// SetBindPoint binds the whole buffer to the uniform block binding point bindPointIndex.
// Shader programs connect their blocks to the same index with SetUniformBlockBindingPoint.
func (ub *UniformBuffer) SetBindPoint(bindPointIndex uint32) {
	logging.Trace(ubLog, "Binding index", "id", ub.Id, "index", bindPointIndex)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, bindPointIndex, ub.Id)
}

// SetData uploads raw bytes starting at offset 0. If data is larger than the
// current allocation the buffer is reallocated.
func (ub *UniformBuffer) SetData(data []byte) {

	ub.Bind()
	ubLog.Info("Buffering data to GPU", "id", ub.Id, "bytes", len(data))

	if len(data) == 0 {
		return
	}

	if uint32(len(data)) > ub.Size {
		ub.Size = uint32(len(data))
		gl.BufferData(gl.UNIFORM_BUFFER, len(data), gl.Ptr(&data[0]), ub.Usage.ToGL())
	} else {
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(&data[0]))
	}

	metrics.Uploaded(metrics.KindUniformBuffer, len(data))
}

// SetFloats uploads values starting at byteOffset. Useful with raw uniform buffers.
func (ub *UniformBuffer) SetFloats(byteOffset int, values []float32) {

	if len(values) == 0 {
		return
	}

	assert.T(byteOffset+len(values)*4 <= int(ub.Size), "writing %d floats at offset %d overflows uniform buffer of size %d", len(values), byteOffset, ub.Size)

	ub.Bind()
	gl.BufferSubData(gl.UNIFORM_BUFFER, byteOffset, len(values)*4, gl.Ptr(&values[0]))
	metrics.Uploaded(metrics.KindUniformBuffer, len(values)*4)
}

// LayoutStd140 computes the offset of every field following the std140 rules
// and returns the flattened fields along with the size of the whole block.
//
// Struct fields are followed by their subfields. Offsets of subfields are
// absolute, and for arrays of structs only the first struct's subfields are listed.
func LayoutStd140(fields []UniformBufferFieldInput) (out []UniformBufferField, size uint32) {
	out = make([]UniformBufferField, 0, len(fields))
	end := addStd140Fields(0, &out, fields)
	padTo16Boundary(&end)
	return out, uint32(end)
}

func addStd140Fields(startOffset uint16, out *[]UniformBufferField, fieldsToAdd []UniformBufferFieldInput) (size uint16) {

	var offset uint16 = 0
	fieldIdToType := make(map[uint16]ElementType, len(fieldsToAdd))

	for i := 0; i < len(fieldsToAdd); i++ {

		f := fieldsToAdd[i]
		if f.Count == 0 {
			f.Count = 1
		}

		existingType, ok := fieldIdToType[f.Id]
		assert.T(!ok, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%s and then used on a different field with type=%s", f.Id, existingType.String(), f.Type.String())
		fieldIdToType[f.Id] = f.Type

		// Arrays, including arrays of scalars, align every element to a vec4.
		// As an example, a vec4 added at offset 100 has an alignment error of 100%16=4
		// and so moves up by 16-4 to 112.
		alignment := f.Type.Std140Alignment()
		if f.Count > 1 {
			alignment = 16
		}

		if alignErr := offset % alignment; alignErr != 0 {
			offset += alignment - alignErr
		}

		*out = append(*out, UniformBufferField{
			Id:            f.Id,
			Type:          f.Type,
			AlignedOffset: startOffset + offset,
			Count:         f.Count,
		})

		if f.Type == DataTypeStruct {
			structSize := addStd140Fields(startOffset+offset, out, f.Subfields)
			padTo16Boundary(&structSize)
			offset += structSize * f.Count
			continue
		}

		elemSize := f.Type.Std140Size()
		if f.Count > 1 {
			padTo16Boundary(&elemSize)
		}
		offset += elemSize * f.Count
	}

	return offset
}

func padTo16Boundary[T uint16 | uint32 | int | int32](val *T) {
	alignmentError := *val % 16
	if alignmentError != 0 {
		*val += 16 - alignmentError
	}
}

// Std140Mat2 lays out m as two vec4 aligned columns
func Std140Mat2(m mgl32.Mat2) [8]float32 {
	return [8]float32{
		m[0], m[1], 0, 0,
		m[2], m[3], 0, 0,
	}
}

// Std140Mat3 lays out m as three vec4 aligned columns
func Std140Mat3(m mgl32.Mat3) [12]float32 {
	return [12]float32{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
	}
}

func (ub *UniformBuffer) getField(fieldId uint16, fieldType ElementType) UniformBufferField {

	for i := 0; i < len(ub.Fields); i++ {

		f := ub.Fields[i]
		if f.Id != fieldId {
			continue
		}

		assert.T(f.Type == fieldType, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%v, but is now being used on a field with type=%v", fieldId, f.Type.String(), fieldType.String())
		return f
	}

	logging.ErrLog.Panicf("couldn't find uniform buffer field of id=%d and type=%s\n", fieldId, fieldType.String())
	return UniformBufferField{}
}

func (ub *UniformBuffer) setField(fieldId uint16, fieldType ElementType, sizeInBytes int, ptr any) {
	f := ub.getField(fieldId, fieldType)
	ub.Bind()
	gl.BufferSubData(gl.UNIFORM_BUFFER, int(f.AlignedOffset), sizeInBytes, gl.Ptr(ptr))
	metrics.Uploaded(metrics.KindUniformBuffer, sizeInBytes)
}

func (ub *UniformBuffer) SetInt32(fieldId uint16, val int32) {
	ub.setField(fieldId, DataTypeInt32, 4, &val)
}

func (ub *UniformBuffer) SetUint32(fieldId uint16, val uint32) {
	ub.setField(fieldId, DataTypeUint32, 4, &val)
}

func (ub *UniformBuffer) SetFloat32(fieldId uint16, val float32) {
	ub.setField(fieldId, DataTypeFloat32, 4, &val)
}

func (ub *UniformBuffer) SetVec2(fieldId uint16, val mgl32.Vec2) {
	ub.setField(fieldId, DataTypeVec2, 4*2, &val[0])
}

func (ub *UniformBuffer) SetVec3(fieldId uint16, val mgl32.Vec3) {
	ub.setField(fieldId, DataTypeVec3, 4*3, &val[0])
}

func (ub *UniformBuffer) SetVec4(fieldId uint16, val mgl32.Vec4) {
	ub.setField(fieldId, DataTypeVec4, 4*4, &val[0])
}

func (ub *UniformBuffer) SetMat2(fieldId uint16, val mgl32.Mat2) {
	cols := Std140Mat2(val)
	ub.setField(fieldId, DataTypeMat2, len(cols)*4, &cols[0])
}

func (ub *UniformBuffer) SetMat3(fieldId uint16, val mgl32.Mat3) {
	cols := Std140Mat3(val)
	ub.setField(fieldId, DataTypeMat3, len(cols)*4, &cols[0])
}

func (ub *UniformBuffer) SetMat4(fieldId uint16, val mgl32.Mat4) {
	ub.setField(fieldId, DataTypeMat4, 4*16, &val[0])
}

func (ub *UniformBuffer) Delete() {

	if ub.Id == 0 {
		return
	}

	ubLog.Info("Deleting", "id", ub.Id)
	gl.DeleteBuffers(1, &ub.Id)
	ub.Id = 0
	metrics.Deleted(metrics.KindUniformBuffer)
}

// NewUniformBuffer lays out fields with std140 and allocates the buffer
func NewUniformBuffer(fields []UniformBufferFieldInput) UniformBuffer {

	ubFields, size := LayoutStd140(fields)

	ub := NewRawUniformBuffer(size)
	ub.Fields = ubFields

	return ub
}

// NewRawUniformBuffer allocates size bytes with no field information. Data is
// written with SetData or SetFloats.
func NewRawUniformBuffer(size uint32) UniformBuffer {

	ub := UniformBuffer{
		Size:  size,
		Usage: BufUsage_Static_Draw,
	}

	gl.GenBuffers(1, &ub.Id)
	if ub.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer for a uniform buffer")
	}

	ubLog.Info("Creating new UniformBuffer", "id", ub.Id, "size", size)
	metrics.Created(metrics.KindUniformBuffer)

	ub.Bind()
	gl.BufferData(gl.UNIFORM_BUFFER, int(ub.Size), nil, ub.Usage.ToGL())
	ub.UnBind()

	return ub
}
