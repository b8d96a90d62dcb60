package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraUpdatePullsControllerPose(t *testing.T) {
	ctrl := NewOrbitController()
	ctrl.Update(0.016)

	cam := NewCamera(WithController(ctrl))
	cam.Update()

	px, py, pz := ctrl.Position()
	u := cam.Uniform()
	if u.CameraPosition != [3]float32{px, py, pz} {
		t.Errorf("expected uniform position (%v, %v, %v), got %v", px, py, pz, u.CameraPosition)
	}

	// The view matrix maps the camera position to the view-space origin.
	origin := cam.ViewMatrix().Mul4x1(mgl32.Vec4{px, py, pz, 1})
	for i := 0; i < 3; i++ {
		if !approx(origin[i], 0, 1e-3) {
			t.Errorf("expected camera position at view origin, got %v", origin)
		}
	}
}

func TestCameraUpdateWithoutController(t *testing.T) {
	cam := NewCamera()
	cam.Update()

	if cam.ViewProjectionMatrix() != mgl32.Ident4() {
		t.Error("expected identity view-projection without a controller")
	}
}

func TestCameraSetAspectRecomputes(t *testing.T) {
	ctrl := NewOrbitController()
	ctrl.Update(0.016)
	cam := NewCamera(WithController(ctrl))

	cam.SetAspect(1.0)
	p1 := cam.ProjectionMatrix()
	cam.SetAspect(2.0)
	p2 := cam.ProjectionMatrix()

	if p1 == p2 {
		t.Error("expected projection to change with aspect")
	}
}

func TestGPUCameraUniformSize(t *testing.T) {
	u := GPUCameraUniform{}
	if got := len(u.Bytes()); got != GPUCameraUniformSize {
		t.Errorf("expected %d uniform bytes, got %d", GPUCameraUniformSize, got)
	}
}
