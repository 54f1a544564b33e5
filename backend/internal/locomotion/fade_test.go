package locomotion

import (
	"io"
	"log"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/scene"
)

func TestFadeMovesRigWhileOpaque(t *testing.T) {
	sc := scene.New()
	f := NewFade(sc, log.New(io.Discard, "", 0))
	occ := f.Occluder()

	if occ.Parent() != sc.Camera || occ.Visible {
		t.Fatal("occluder should start hidden on the camera")
	}

	offset := mgl64.Vec3{1, 0, -2}
	done := 0
	if !f.Locomotion(offset, sc.Rig, func() { done++ }) {
		t.Fatal("Locomotion = false")
	}
	if !occ.Visible || occ.Opacity != 0 {
		t.Errorf("after start: visible=%v opacity=%v", occ.Visible, occ.Opacity)
	}

	f.Update(FadeDuration / 2)
	if math.Abs(occ.Opacity-0.75) > 1e-9 {
		t.Errorf("half way opacity = %v, want 0.75", occ.Opacity)
	}
	if sc.Rig.Position != (mgl64.Vec3{}) {
		t.Error("rig moved before the screen was black")
	}

	if f.Locomotion(mgl64.Vec3{5, 0, 5}, sc.Rig, nil) {
		t.Error("overlapping Locomotion accepted")
	}

	f.Update(FadeDuration / 2)
	if occ.Opacity != 1 {
		t.Errorf("opacity = %v at full black", occ.Opacity)
	}
	if sc.Rig.Position != offset {
		t.Errorf("rig = %v, want %v", sc.Rig.Position, offset)
	}

	f.Update(FadeDuration / 2)
	if math.Abs(occ.Opacity-0.5) > 1e-9 || done != 0 {
		t.Errorf("clearing: opacity=%v done=%d", occ.Opacity, done)
	}

	f.Update(FadeDuration)
	if occ.Visible || occ.Opacity != 0 || f.Active() {
		t.Errorf("after fade: visible=%v opacity=%v active=%v", occ.Visible, occ.Opacity, f.Active())
	}
	if done != 1 {
		t.Errorf("done ran %d times", done)
	}

	f.Update(time.Second)
	if done != 1 || sc.Rig.Position != offset {
		t.Error("idle fade changed state")
	}
}

func TestFadeOffsetIsAdditive(t *testing.T) {
	sc := scene.New()
	f := NewFade(sc, log.New(io.Discard, "", 0))
	sc.Rig.Position = mgl64.Vec3{2, 0, 2}

	f.Locomotion(mgl64.Vec3{-1, 0, 3}, sc.Rig, nil)
	for f.Active() {
		f.Update(50 * time.Millisecond)
	}
	if want := (mgl64.Vec3{1, 0, 5}); sc.Rig.Position != want {
		t.Errorf("rig = %v, want %v", sc.Rig.Position, want)
	}
}
