package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/config"
)

func testConfig() *config.Config {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func steadyConfig() *config.Config {
	cfg := testConfig()
	cfg.Camera.SwayAmplitude = 0
	return cfg
}

func vecNear(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestRigAspect(t *testing.T) {
	rig := NewRig(testConfig(), 800, 600)
	if got := rig.Aspect(); math.Abs(got-800.0/600.0) > 1e-12 {
		t.Errorf("aspect = %v, want %v", got, 800.0/600.0)
	}

	rig.Resize(1920, 1080)
	if got := rig.Aspect(); math.Abs(got-1920.0/1080.0) > 1e-12 {
		t.Errorf("aspect after resize = %v, want %v", got, 1920.0/1080.0)
	}
}

func TestRigResizeGuardsZero(t *testing.T) {
	rig := NewRig(testConfig(), 800, 600)
	rig.Resize(0, 0)
	if a := rig.Aspect(); math.IsNaN(a) || math.IsInf(a, 0) {
		t.Errorf("degenerate viewport produced aspect %v", a)
	}
}

func TestRigEndpointPoses(t *testing.T) {
	cfg := steadyConfig()
	rig := NewRig(cfg, 800, 600)

	// Sustained scroll at 0: the pose is the wave endpoint.
	rig.Update(0, 12.7)
	if !vecNear(rig.Pose().Position, PoseFromConfig(cfg.Camera.WavePose).Position, 1e-9) {
		t.Errorf("pose at morph 0 = %+v, want wave endpoint", rig.Pose().Position)
	}

	// Sustained scroll at 1: the sphere endpoint, regardless of sway
	// settings, which scale by (1-smoothed).
	cfg2 := testConfig()
	rig2 := NewRig(cfg2, 800, 600)
	rig2.Update(1, 99.3)
	want := PoseFromConfig(cfg2.Camera.SpherePose)
	if !vecNear(rig2.Pose().Position, want.Position, 1e-9) {
		t.Errorf("pose at morph 1 = %+v, want sphere endpoint %+v", rig2.Pose().Position, want.Position)
	}
	if !vecNear(rig2.Pose().Target, want.Target, 1e-9) {
		t.Errorf("target at morph 1 = %+v, want %+v", rig2.Pose().Target, want.Target)
	}
}

func TestRigConvergesWithSmoothing(t *testing.T) {
	cfg := steadyConfig()
	rig := NewRig(cfg, 800, 600)

	// Exponential smoothing toward a sustained target, as the engine runs it.
	smoothed := 0.0
	for i := 0; i < 600; i++ {
		smoothed += (1 - smoothed) * 0.05
		rig.Update(smoothed, float64(i)/60)
	}

	want := PoseFromConfig(cfg.Camera.SpherePose)
	if !vecNear(rig.Pose().Position, want.Position, 1e-4) {
		t.Errorf("pose after sustained scroll=1: %+v, want %+v", rig.Pose().Position, want.Position)
	}
}

func TestRigPoseLerpMidpoint(t *testing.T) {
	cfg := steadyConfig()
	rig := NewRig(cfg, 800, 600)
	rig.Update(0.5, 0)

	a := PoseFromConfig(cfg.Camera.WavePose).Position
	b := PoseFromConfig(cfg.Camera.SpherePose).Position
	want := r3.Scale(0.5, r3.Add(a, b))
	if !vecNear(rig.Pose().Position, want, 1e-9) {
		t.Errorf("midpoint pose = %+v, want %+v", rig.Pose().Position, want)
	}
}

func TestRigSwayFadesOut(t *testing.T) {
	cfg := testConfig()
	if cfg.Camera.SwayAmplitude <= 0 {
		t.Skip("sway disabled in defaults")
	}
	rig := NewRig(cfg, 800, 600)

	// Wave-dominant: pose moves over time.
	rig.Update(0, 1.0)
	p1 := rig.Pose().Position
	rig.Update(0, 2.0)
	p2 := rig.Pose().Position
	if vecNear(p1, p2, 1e-9) {
		t.Error("idle sway not visible in wave state")
	}

	// Morph complete: perfectly still.
	rig.Update(1, 1.0)
	q1 := rig.Pose().Position
	rig.Update(1, 2.0)
	q2 := rig.Pose().Position
	if !vecNear(q1, q2, 1e-12) {
		t.Error("camera drifts after the sphere has formed")
	}
}

func TestWorldToNDCCenter(t *testing.T) {
	cfg := steadyConfig()
	rig := NewRig(cfg, 800, 600)
	rig.Update(0, 0)

	// The look-at target projects to the NDC origin.
	target := PoseFromConfig(cfg.Camera.WavePose).Target
	x, y, depth, ok := rig.WorldToNDC(target)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("target projects to (%v, %v), want origin", x, y)
	}
	wantDepth := r3.Norm(r3.Sub(target, PoseFromConfig(cfg.Camera.WavePose).Position))
	if math.Abs(depth-wantDepth) > 1e-9 {
		t.Errorf("depth = %v, want %v", depth, wantDepth)
	}
}

func TestWorldToNDCBehindCamera(t *testing.T) {
	cfg := steadyConfig()
	rig := NewRig(cfg, 800, 600)
	rig.Update(0, 0)

	pose := PoseFromConfig(cfg.Camera.WavePose)
	behind := r3.Add(pose.Position, r3.Sub(pose.Position, pose.Target))
	if _, _, _, ok := rig.WorldToNDC(behind); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestWorldToScreenMapsNDC(t *testing.T) {
	cfg := steadyConfig()
	rig := NewRig(cfg, 800, 600)
	rig.Update(0, 0)

	target := PoseFromConfig(cfg.Camera.WavePose).Target
	sx, sy, _, ok := rig.WorldToScreen(target)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(sx-400) > 1e-6 || math.Abs(sy-300) > 1e-6 {
		t.Errorf("screen center = (%v, %v), want (400, 300)", sx, sy)
	}
}

func TestPixelSizeAttenuation(t *testing.T) {
	rig := NewRig(steadyConfig(), 800, 600)

	near := rig.PixelSize(0.1, 10)
	far := rig.PixelSize(0.1, 20)
	if math.Abs(near-2*far) > 1e-9 {
		t.Errorf("size should halve with doubled depth: %v vs %v", near, far)
	}
	if rig.PixelSize(0.1, 0) != 0 {
		t.Error("zero depth must not divide")
	}
}

func TestLerpPoseComponents(t *testing.T) {
	a := Pose{Position: r3.Vec{X: 0}, Target: r3.Vec{Y: 2}, Up: r3.Vec{Y: 1}}
	b := Pose{Position: r3.Vec{X: 10}, Target: r3.Vec{Y: 4}, Up: r3.Vec{X: 1}}

	got := LerpPose(a, b, 0.25)
	if math.Abs(got.Position.X-2.5) > 1e-12 {
		t.Errorf("position lerp = %v, want 2.5", got.Position.X)
	}
	if math.Abs(got.Target.Y-2.5) > 1e-12 {
		t.Errorf("target lerp = %v, want 2.5", got.Target.Y)
	}
	if math.Abs(got.Up.Y-0.75) > 1e-12 || math.Abs(got.Up.X-0.25) > 1e-12 {
		t.Errorf("up lerp = %+v", got.Up)
	}
}
