package buffers

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/assert"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	// Set once and used many times. This is the default of every buffer
	BufUsage_Static_Draw
	// Changed a lot and used many times
	BufUsage_Dynamic_Draw
	// Set once and used by the GPU at most a few times
	BufUsage_Stream_Draw

	BufUsage_Static_Read
	BufUsage_Dynamic_Read
	BufUsage_Stream_Read

	BufUsage_Static_Copy
	BufUsage_Dynamic_Copy
	BufUsage_Stream_Copy
)

var bufUsageInfo = [...]struct {
	gl   uint32
	name string
}{
	BufUsage_Static_Draw:  {gl.STATIC_DRAW, "static_draw"},
	BufUsage_Dynamic_Draw: {gl.DYNAMIC_DRAW, "dynamic_draw"},
	BufUsage_Stream_Draw:  {gl.STREAM_DRAW, "stream_draw"},

	BufUsage_Static_Read:  {gl.STATIC_READ, "static_read"},
	BufUsage_Dynamic_Read: {gl.DYNAMIC_READ, "dynamic_read"},
	BufUsage_Stream_Read:  {gl.STREAM_READ, "stream_read"},

	BufUsage_Static_Copy:  {gl.STATIC_COPY, "static_copy"},
	BufUsage_Dynamic_Copy: {gl.DYNAMIC_COPY, "dynamic_copy"},
	BufUsage_Stream_Copy:  {gl.STREAM_COPY, "stream_copy"},
}

func (b BufUsage) IsValid() bool {
	return b > BufUsage_Unknown && int(b) < len(bufUsageInfo)
}

func (b BufUsage) ToGL() uint32 {
	assert.T(b.IsValid(), "Unexpected BufUsage value '%d'", int(b))
	if !b.IsValid() {
		return 0
	}
	return bufUsageInfo[b].gl
}

func (b BufUsage) String() string {
	if !b.IsValid() {
		return "unknown"
	}
	return bufUsageInfo[b].name
}

// BufUsageFromGL is the inverse of ToGL. Unknown enums give BufUsage_Unknown.
func BufUsageFromGL(glUsage uint32) BufUsage {
	for i := BufUsage_Static_Draw; int(i) < len(bufUsageInfo); i++ {
		if bufUsageInfo[i].gl == glUsage {
			return i
		}
	}
	return BufUsage_Unknown
}
