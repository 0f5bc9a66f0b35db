// Package camera provides the interpolated 3D viewpoint and its perspective
// projection. The rig lerps between the two configured endpoint poses as the
// morph progresses and adds a small idle sway that fades out once the sphere
// has formed.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/config"
)

// Pose is one camera endpoint: position, look-at target and up vector.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
}

// PoseFromConfig converts a configured pose.
func PoseFromConfig(p config.PoseConfig) Pose {
	return Pose{
		Position: r3.Vec{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
		Target:   r3.Vec{X: p.Target[0], Y: p.Target[1], Z: p.Target[2]},
		Up:       r3.Vec{X: p.Up[0], Y: p.Up[1], Z: p.Up[2]},
	}
}

// LerpPose interpolates each pose component independently.
func LerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Position: lerpVec(a.Position, b.Position, t),
		Target:   lerpVec(a.Target, b.Target, t),
		Up:       lerpVec(a.Up, b.Up, t),
	}
}

// Rig owns the current viewpoint and projection state.
type Rig struct {
	WavePose   Pose
	SpherePose Pose

	Fov  float64 // vertical field of view in radians
	Near float64
	Far  float64

	SwayAmplitude float64
	SwaySpeed     float64

	width, height float64

	// view basis, rebuilt by Update
	pose    Pose
	right   r3.Vec
	up      r3.Vec
	forward r3.Vec
}

// NewRig builds a rig from config at the given viewport size.
func NewRig(cfg *config.Config, width, height float64) *Rig {
	r := &Rig{
		WavePose:      PoseFromConfig(cfg.Camera.WavePose),
		SpherePose:    PoseFromConfig(cfg.Camera.SpherePose),
		Fov:           cfg.Camera.FovDegrees * math.Pi / 180,
		Near:          cfg.Camera.Near,
		Far:           cfg.Camera.Far,
		SwayAmplitude: cfg.Camera.SwayAmplitude,
		SwaySpeed:     cfg.Camera.SwaySpeed,
	}
	r.Resize(width, height)
	r.Update(0, 0)
	return r
}

// Update recomputes the viewpoint for the frame. smoothed is the global
// morph value, elapsed the scaled clock. Sway amplitude scales by
// (1-smoothed) so the camera is perfectly still once the morph completes.
func (r *Rig) Update(smoothed, elapsed float64) {
	pose := LerpPose(r.WavePose, r.SpherePose, smoothed)

	sway := r.SwayAmplitude * (1 - smoothed)
	if sway > 0 {
		t := elapsed * r.SwaySpeed * 2 * math.Pi
		pose.Position.X += sway * math.Sin(t)
		pose.Position.Y += sway * 0.4 * math.Sin(t*0.7+1.3)
		pose.Target.X += sway * 0.25 * math.Cos(t*0.9)
	}

	r.pose = pose

	fwd := r3.Sub(pose.Target, pose.Position)
	if r3.Norm(fwd) < 1e-9 {
		fwd = r3.Vec{Z: -1}
	}
	r.forward = r3.Unit(fwd)
	right := r3.Cross(r.forward, pose.Up)
	if r3.Norm(right) < 1e-9 {
		// Up is parallel to the view direction; pick an arbitrary basis.
		right = r3.Cross(r.forward, r3.Vec{X: 1})
	}
	r.right = r3.Unit(right)
	r.up = r3.Cross(r.right, r.forward)
}

// Resize updates the viewport dimensions. Zero dimensions are guarded so a
// minimized window cannot produce a degenerate aspect ratio.
func (r *Rig) Resize(width, height float64) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
}

// Aspect returns width/height.
func (r *Rig) Aspect() float64 {
	return r.width / r.height
}

// Pose returns the pose computed by the last Update.
func (r *Rig) Pose() Pose {
	return r.pose
}

// WorldToNDC projects a world point to normalized device coordinates with Y
// up, returning the view-space depth. ok is false behind the near plane or
// past the far plane.
func (r *Rig) WorldToNDC(p r3.Vec) (ndcX, ndcY, depth float64, ok bool) {
	d := r3.Sub(p, r.pose.Position)
	vz := r3.Dot(d, r.forward)
	if vz < r.Near || vz > r.Far {
		return 0, 0, vz, false
	}
	f := 1 / math.Tan(r.Fov/2)
	vx := r3.Dot(d, r.right)
	vy := r3.Dot(d, r.up)
	return f / r.Aspect() * vx / vz, f * vy / vz, vz, true
}

// WorldToScreen projects a world point to pixel coordinates with Y down.
func (r *Rig) WorldToScreen(p r3.Vec) (sx, sy, depth float64, ok bool) {
	ndcX, ndcY, depth, ok := r.WorldToNDC(p)
	if !ok {
		return 0, 0, depth, false
	}
	return (ndcX + 1) / 2 * r.width, (1 - ndcY) / 2 * r.height, depth, true
}

// PixelSize converts a world-space size at the given view depth to pixels:
// standard size-with-distance attenuation.
func (r *Rig) PixelSize(worldSize, depth float64) float64 {
	if depth < 1e-6 {
		return 0
	}
	f := 1 / math.Tan(r.Fov/2)
	return worldSize * f * (r.height / 2) / depth
}

func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
