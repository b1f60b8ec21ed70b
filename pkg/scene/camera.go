package scene

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// CameraConfig describes a thin-lens camera with a shutter interval
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width over height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the plane in focus; 0 uses the look-at distance
	Time0, Time1  float64   // Shutter open and close times
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}
	if config.Up.Norm2() == 0 {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = config.LookFrom.Sub(config.LookAt).Norm()
		if config.FocusDistance == 0 {
			config.FocusDistance = 1
		}
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.LookFrom.Sub(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	origin := config.LookFrom
	horizontal := u.Mul(2 * halfWidth * focus)
	vertical := v.Mul(2 * halfHeight * focus)
	lowerLeftCorner := origin.
		Sub(horizontal.Mul(0.5)).
		Sub(vertical.Mul(0.5)).
		Sub(w.Mul(focus))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// Config returns the configuration the camera was built from, with defaults filled in
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ShutterInterval returns the times the shutter opens and closes
func (c *Camera) ShutterInterval() (float64, float64) {
	return c.config.Time0, c.config.Time1
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// The sampler supplies the lens position and the ray time.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		lens := core.SamplePointInUnitDisk(sampler.Get2D()).Mul(c.lensRadius)
		origin = origin.Add(c.u.Mul(lens.X)).Add(c.v.Mul(lens.Y))
	}

	time := c.config.Time0
	if c.config.Time1 > c.config.Time0 {
		time += sampler.Get1D() * (c.config.Time1 - c.config.Time0)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Mul(s)).
		Add(c.vertical.Mul(t)).
		Sub(origin)

	return core.NewRayAtTime(origin, direction, time)
}
