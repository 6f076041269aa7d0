// Package field implements the attraction force acting on particles and
// dust grains. Everything here is a pure function of its arguments and is
// safe to call from any number of goroutines.
package field

import "github.com/san-kum/circles/internal/geom"

// MaxStep bounds each axis of the normalized offset toward an attractor, so
// pull strength saturates instead of growing with distance.
const MaxStep = 0.01

// Params holds the per-pool force constants.
type Params struct {
	// Speed is the pull strength per second; it is scaled by the tick delta.
	Speed float32
	// CursorFalloff is k in (1 + k·d)^16 for the cursor attractor.
	CursorFalloff float32
	// CharacterFalloff is k in (1 + k·d)^16 for the character attractor.
	CharacterFalloff float32
	// ClickBias shrinks the cursor falloff base by (1 − bias·click).
	ClickBias float32
}

// Input is the state one element sees during a tick. Cursor and Character
// are in world space.
type Input struct {
	Position  geom.Vec2
	Cursor    geom.Vec2
	Character geom.Vec2
	Size      geom.Vec2
	Click     float32
	Delta     float32
}

// Distance is the length of the offset between a and b after dividing each
// axis by the viewport size.
func Distance(a, b, size geom.Vec2) float32 {
	return b.Sub(a).Div(size).Length()
}

// Falloff returns (base)^16. base is at least 1 for every non-negative
// distance, so the result never drops below 1.
func Falloff(d, k float32) float32 {
	return pow16(1 + k*d)
}

// CursorFalloff is Falloff with the base biased by click intensity before
// exponentiation. With click in [0,1] and bias < 1 the result stays positive.
func CursorFalloff(d, k, click, bias float32) float32 {
	return pow16((1 + k*d) * (1 - bias*click))
}

// Pull is the displacement toward target for one tick.
func Pull(pos, target, size geom.Vec2, speed, falloff float32) geom.Vec2 {
	step := target.Sub(pos).Div(size).Clamp(-MaxStep, MaxStep)
	return size.Mul(step).Scale(speed / falloff)
}

// Velocity returns the combined cursor and character displacement for one
// tick. Random jitter is added by the caller.
func Velocity(in Input, p Params) geom.Vec2 {
	speed := p.Speed * in.Delta

	cd := Distance(in.Position, in.Cursor, in.Size)
	cursor := Pull(in.Position, in.Cursor, in.Size, speed, CursorFalloff(cd, p.CursorFalloff, in.Click, p.ClickBias))
	cursor = cursor.Scale(in.Click + 1)

	hd := Distance(in.Position, in.Character, in.Size)
	character := Pull(in.Position, in.Character, in.Size, speed, Falloff(hd, p.CharacterFalloff))

	return cursor.Add(character)
}

func pow16(x float32) float32 {
	x *= x
	x *= x
	x *= x
	return x * x
}
