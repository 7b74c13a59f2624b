package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera looks down the Z axis at Center, turned by Yaw about Z and then
// tilted by Pitch about X. Extent metres from the centre fill half the
// shorter side of the canvas at Zoom 1.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Extent     float64
	Center     mgl64.Vec3
}

func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Zoom: 1, Extent: extent}
}

func (c *Camera) Rotate(yaw float64) { c.Yaw = math.Mod(c.Yaw+yaw, 2*math.Pi) }

func (c *Camera) Tilt(pitch float64) {
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+pitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(1e4, c.Zoom*1.25) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(1e-2, c.Zoom/1.25) }

func (c *Camera) view() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DZ(c.Yaw))
}

// Project maps a point in metres to dot coordinates on a w×h dot canvas.
// ok is false for points off the canvas.
func (c *Camera) Project(p mgl64.Vec3, w, h int) (x, y int, ok bool) {
	v := c.view().Mul3x1(p.Sub(c.Center))
	scale := float64(min(w, h)) / 2 / c.Extent * c.Zoom
	fx := float64(w)/2 + v.X()*scale
	fy := float64(h)/2 - v.Y()*scale
	if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > 1e6 || math.Abs(fy) > 1e6 {
		return 0, 0, false
	}
	x, y = int(math.Round(fx)), int(math.Round(fy))
	return x, y, x >= 0 && y >= 0 && x < w && y < h
}
