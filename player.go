package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"mazewalker/audio"
	"mazewalker/collision"
	"mazewalker/common"
	"mazewalker/render"
)

const (
	moveSpeed = 3.4 // world units per second
	turnSpeed = 2.4 // radians per second

	playerRadius = 0.4
	playerHeight = 1.7

	// head bob is cosmetic only: it rides on the camera position and never
	// feeds back into collision state
	bobFrequency = 6.5 // phase advance per world unit walked
	bobAmplitude = 0.05

	strideLength = 1.6 // world units between footstep sounds
)

// Player is the first-person motion controller. Every fixed tick it turns
// input into a proposed position, lets the resolver adjust it, and commits
// the result.
type Player struct {
	Pos common.Vec3
	Yaw float64

	resolver *collision.Resolver
	sounds   *audio.Sounds
	corridor float64

	bobPhase float64
	bobLevel float64
	stride   float64
}

func NewPlayer(start common.Vec3, resolver *collision.Resolver, sounds *audio.Sounds, corridor float64) *Player {
	return &Player{
		Pos:      start,
		resolver: resolver,
		sounds:   sounds,
		corridor: corridor,
	}
}

// Turn applies a yaw delta; used for mouse look between fixed steps.
func (p *Player) Turn(delta float64) {
	p.Yaw += delta
}

// Step advances one fixed physics tick: sample held keys, propose a move,
// resolve it against the walls, commit, then sync the resolver with the
// render-facing camera position.
func (p *Player) Step(dt float64) {
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		p.Yaw -= turnSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		p.Yaw += turnSpeed * dt
	}

	dirX, dirZ := p.heading()
	var forward, strafe float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		strafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		strafe--
	}

	moveX := dirX*forward - dirZ*strafe
	moveZ := dirZ*forward + dirX*strafe
	if l := math.Hypot(moveX, moveZ); l > 1 {
		moveX /= l
		moveZ /= l
	}

	proposed := p.Pos
	proposed.X += moveX * moveSpeed * dt
	proposed.Z += moveZ * moveSpeed * dt

	adjusted := p.resolver.Resolve(p.Pos, proposed)
	walked := common.DistXZ(p.Pos, adjusted)
	p.Pos = adjusted

	p.advanceBob(walked, dt)
	p.resolver.UpdatePlayerPosition(p.cameraPos())

	if walked > 0 {
		p.stride += walked
		if p.stride >= strideLength {
			p.stride -= strideLength
			p.sounds.Footstep()
		}
	}
}

func (p *Player) advanceBob(walked, dt float64) {
	if walked > 1e-6 {
		p.bobPhase += walked * bobFrequency
		p.bobLevel = math.Min(1, p.bobLevel+4*dt)
	} else {
		p.bobLevel = math.Max(0, p.bobLevel-4*dt)
	}
}

func (p *Player) heading() (float64, float64) {
	return math.Cos(p.Yaw), math.Sin(p.Yaw)
}

// cameraPos is the render-facing position: collision position at eye
// height plus the bob offset.
func (p *Player) cameraPos() common.Vec3 {
	eye := p.corridor / 2
	bob := math.Sin(p.bobPhase) * bobAmplitude * p.bobLevel
	return common.Vec3{X: p.Pos.X, Y: eye + bob, Z: p.Pos.Z}
}

// Camera returns the view state for the renderer.
func (p *Player) Camera() render.Camera {
	dirX, dirZ := p.heading()
	return render.Camera{
		Pos:    p.cameraPos(),
		DirX:   dirX,
		DirZ:   dirZ,
		PlaneX: -dirZ * 0.66,
		PlaneZ: dirX * 0.66,
	}
}
