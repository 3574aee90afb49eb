// Package timing tracks frame durations for the game loop. Times are in seconds.
package timing

import "time"

// Average FPS is recomputed every avgFPSWindow
const avgFPSWindow = time.Second

var (
	now = time.Now

	startTime      time.Time
	frameStartTime time.Time

	dt float32

	avgFPS          float32
	avgWindowStart  time.Time
	avgWindowFrames int
	totalFrameCount uint64
)

func Init() {
	startTime = now()
	frameStartTime = startTime
	avgWindowStart = startTime

	dt = 0
	avgFPS = 0
	avgWindowFrames = 0
	totalFrameCount = 0
}

func FrameStarted() {
	frameStartTime = now()
}

func FrameEnded() {

	t := now()
	dt = float32(t.Sub(frameStartTime).Seconds())

	totalFrameCount++
	avgWindowFrames++

	windowDuration := t.Sub(avgWindowStart)
	if windowDuration >= avgFPSWindow {
		avgFPS = float32(float64(avgWindowFrames) / windowDuration.Seconds())
		avgWindowFrames = 0
		avgWindowStart = t
	}
}

// DT is how long the last frame took
func DT() float32 {
	return dt
}

// ElapsedTime is the time since Init
func ElapsedTime() float32 {
	return float32(now().Sub(startTime).Seconds())
}

// FPS is based on the last frame only. Use GetAvgFPS for a stable number.
func FPS() float32 {

	if dt == 0 {
		return 0
	}

	return 1 / dt
}

func GetAvgFPS() float32 {
	return avgFPS
}

func FrameCount() uint64 {
	return totalFrameCount
}
