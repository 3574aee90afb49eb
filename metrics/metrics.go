package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Kinds used as the "kind" label
const (
	KindVertexBuffer  = "vertex_buffer"
	KindIndexBuffer   = "index_buffer"
	KindVertexArray   = "vertex_array"
	KindUniformBuffer = "uniform_buffer"
	KindFramebuffer   = "framebuffer"
	KindRenderbuffer  = "renderbuffer"
	KindTexture2D     = "texture_2d"
	KindCubeMap       = "cube_map"
	KindShader        = "shader"
	KindShaderProgram = "shader_program"
)

var (
	ObjectsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiener_gl_objects_created_total",
		Help: "Total number of OpenGL objects created",
	}, []string{"kind"})
	ObjectsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiener_gl_objects_deleted_total",
		Help: "Total number of OpenGL objects deleted",
	}, []string{"kind"})
	BytesUploaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wiener_gpu_bytes_uploaded_total",
		Help: "Total number of bytes uploaded to GPU objects",
	}, []string{"kind"})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wiener_frames_rendered_total",
		Help: "Total number of frames swapped to the window",
	})
)

func Created(kind string) {
	ObjectsCreated.WithLabelValues(kind).Inc()
}

func Deleted(kind string) {
	ObjectsDeleted.WithLabelValues(kind).Inc()
}

func Uploaded(kind string, bytes int) {
	BytesUploaded.WithLabelValues(kind).Add(float64(bytes))
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
