// Package camera is a free-look camera driven by held keys and mouse motion.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tinyrange/gloom/internal/window"
)

var maxPitch = mgl32.DegToRad(89)

// Camera is a free-look viewpoint with a perspective projection.
type Camera struct {
	Position mgl32.Vec3
	// Yaw and Pitch are in radians. Zero yaw looks down -Z.
	Yaw, Pitch float32

	FovY      float32
	Near, Far float32

	// Speed is in world units per second, TurnRate in radians per second and
	// Sensitivity in radians per pixel of mouse motion.
	Speed       float32
	TurnRate    float32
	Sensitivity float32
}

// New returns a camera three units back from the origin looking at it.
func New() *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 0, 3},
		FovY:        mgl32.DegToRad(60),
		Near:        0.1,
		Far:         100,
		Speed:       2,
		TurnRate:    mgl32.DegToRad(90),
		Sensitivity: 0.0025,
	}
}

// Forward is the horizontal viewing direction.
func (c *Camera) Forward() mgl32.Vec3 {
	sin, cos := sincos(c.Yaw)
	return mgl32.Vec3{sin, 0, -cos}
}

// Right is the horizontal direction to the right of Forward.
func (c *Camera) Right() mgl32.Vec3 {
	sin, cos := sincos(c.Yaw)
	return mgl32.Vec3{cos, 0, sin}
}

func (c *Camera) Move(dir mgl32.Vec3, dt float32) {
	c.Position = c.Position.Add(dir.Mul(c.Speed * dt))
}

// Turn rotates by rates given in multiples of TurnRate.
func (c *Camera) Turn(yaw, pitch, dt float32) {
	c.Yaw += yaw * c.TurnRate * dt
	c.setPitch(c.Pitch + pitch*c.TurnRate*dt)
}

// Look applies accumulated mouse motion.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.setPitch(c.Pitch + dy*c.Sensitivity)
}

func (c *Camera) setPitch(p float32) {
	c.Pitch = mgl32.Clamp(p, -maxPitch, maxPitch)
}

// View returns the world-to-camera transform.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(c.Pitch).
		Mul4(mgl32.HomogRotate3DY(c.Yaw)).
		Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// Matrix returns projection × view for a viewport with the given aspect ratio.
func (c *Camera) Matrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far).Mul4(c.View())
}

// Effect is a continuous action applied every frame a key is held, scaled by
// the frame time in seconds.
type Effect func(c *Camera, dt float32)

// Bindings maps held keys to their effects.
type Bindings map[window.Key]Effect

// DefaultBindings moves with WASD, Space and left Shift and turns with the
// arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		window.KeyW:         func(c *Camera, dt float32) { c.Move(c.Forward(), dt) },
		window.KeyS:         func(c *Camera, dt float32) { c.Move(c.Forward().Mul(-1), dt) },
		window.KeyA:         func(c *Camera, dt float32) { c.Move(c.Right().Mul(-1), dt) },
		window.KeyD:         func(c *Camera, dt float32) { c.Move(c.Right(), dt) },
		window.KeySpace:     func(c *Camera, dt float32) { c.Move(mgl32.Vec3{0, 1, 0}, dt) },
		window.KeyLeftShift: func(c *Camera, dt float32) { c.Move(mgl32.Vec3{0, -1, 0}, dt) },
		window.KeyLeft:      func(c *Camera, dt float32) { c.Turn(-1, 0, dt) },
		window.KeyRight:     func(c *Camera, dt float32) { c.Turn(1, 0, dt) },
		window.KeyUp:        func(c *Camera, dt float32) { c.Turn(0, -1, dt) },
		window.KeyDown:      func(c *Camera, dt float32) { c.Turn(0, 1, dt) },
	}
}

// Apply runs the effect bound to each held key. Unbound keys are ignored.
func (b Bindings) Apply(c *Camera, held []window.Key, dt float32) {
	for _, k := range held {
		if fx, ok := b[k]; ok {
			fx(c, dt)
		}
	}
}
