// Package collision resolves the player cylinder against static axis-aligned
// wall boxes. Collision is strictly horizontal: the player is treated as a
// circle on the XZ plane and Y always passes through untouched.
package collision

import (
	"math"

	"mazewalker/common"
	"mazewalker/spatial"
)

// ShapeKind tags collider geometry. Boxes are the only variant today; the
// tag exists so the grid's handle contract survives new shapes.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
)

// Shape is a static collider: a center and full extents along each axis.
type Shape struct {
	Kind   ShapeKind
	Center common.Vec3
	Size   common.Vec3
}

// Cylinder is the player collider: an upright cylinder at Pos.
type Cylinder struct {
	Pos    common.Vec3
	Radius float64
	Height float64
}

// Config carries resolver tuning. MaxCheckDistance is the broad-phase query
// radius; it is deliberately independent of the spatial grid's cell size.
type Config struct {
	MaxCheckDistance float64
}

// DefaultMaxCheckDistance comfortably covers the player radius plus one
// wall box at the corridor scales the shipped levels use.
const DefaultMaxCheckDistance = 6.0

// WallSource yields the static wall boxes of a built level.
type WallSource interface {
	WallBoxes() []Shape
}

// Resolver owns the player collider and the static wall set for the current
// level. A spatial grid may be attached for broad-phase filtering; without
// one every wall is checked on each resolve.
type Resolver struct {
	player *Cylinder
	walls  []Shape

	grid             *spatial.Grid
	maxCheckDistance float64
}

// NewResolver creates an empty resolver.
func NewResolver(cfg Config) *Resolver {
	max := cfg.MaxCheckDistance
	if max <= 0 {
		max = DefaultMaxCheckDistance
	}
	return &Resolver{maxCheckDistance: max}
}

// SetPlayerCollider replaces the player collider. Called once per level load.
func (r *Resolver) SetPlayerCollider(pos common.Vec3, radius, height float64) {
	r.player = &Cylinder{Pos: pos, Radius: radius, Height: height}
}

// Player returns the current player collider, or nil before a level loads.
func (r *Resolver) Player() *Cylinder { return r.player }

// AddWallCollider appends a static box collider and returns its handle.
// The handle doubles as the spatial-grid payload; walls never move or
// resize after registration.
func (r *Resolver) AddWallCollider(center, size common.Vec3) int {
	r.walls = append(r.walls, Shape{Kind: ShapeBox, Center: center, Size: size})
	return len(r.walls) - 1
}

// Wall returns the collider for a handle minted by AddWallCollider.
func (r *Resolver) Wall(handle int) (Shape, bool) {
	if handle < 0 || handle >= len(r.walls) {
		return Shape{}, false
	}
	return r.walls[handle], true
}

// WallCount reports the number of registered wall colliders.
func (r *Resolver) WallCount() int { return len(r.walls) }

// SetSpatialGrid attaches a broad-phase accelerator. The resolver only
// queries the grid; ownership stays with the level builder.
func (r *Resolver) SetSpatialGrid(g *spatial.Grid) { r.grid = g }

// UpdatePlayerPosition overwrites the collider's tracked position. Used to
// keep the collider in sync with the render-facing camera after a resolve;
// the camera position may carry a cosmetic bob offset.
func (r *Resolver) UpdatePlayerPosition(pos common.Vec3) {
	if r.player == nil {
		return
	}
	r.player.Pos = pos
}

// ExtractFromLevel registers every wall box of a built level and returns
// the handles in registration order. Construction-time helper, not part of
// the per-frame path.
func (r *Resolver) ExtractFromLevel(src WallSource) []int {
	if src == nil {
		return nil
	}
	boxes := src.WallBoxes()
	handles := make([]int, 0, len(boxes))
	for _, b := range boxes {
		handles = append(handles, r.AddWallCollider(b.Center, b.Size))
	}
	return handles
}

// Resolve converts a proposed displacement into a collision-safe one.
// Corrections from multiple overlapping colliders accumulate sequentially
// in iteration order; later colliders see the already-adjusted position.
// The returned Y always equals current.Y.
func (r *Resolver) Resolve(current, proposed common.Vec3) common.Vec3 {
	if r.player == nil {
		return proposed
	}

	adjusted := proposed
	radius := r.player.Radius

	if r.grid != nil {
		for _, handle := range r.grid.FindNearby(proposed.X, proposed.Z, r.maxCheckDistance) {
			wall, ok := r.Wall(handle)
			if !ok {
				continue // grid payloads that are not wall handles are ignored
			}
			adjusted = resolveCircleBox(adjusted, radius, wall)
		}
	} else {
		for _, wall := range r.walls {
			adjusted = resolveCircleBox(adjusted, radius, wall)
		}
	}

	adjusted.Y = current.Y
	return adjusted
}

// Clear drops all wall colliders and the player collider. Called on level
// unload; the attached grid reference is dropped with them.
func (r *Resolver) Clear() {
	r.player = nil
	r.walls = r.walls[:0]
	r.grid = nil
}

// resolveCircleBox pushes a circle of the given radius at pos out of a box,
// returning the corrected position. Pure XZ math; Y is untouched here.
func resolveCircleBox(pos common.Vec3, radius float64, wall Shape) common.Vec3 {
	minX := wall.Center.X - wall.Size.X/2
	maxX := wall.Center.X + wall.Size.X/2
	minZ := wall.Center.Z - wall.Size.Z/2
	maxZ := wall.Center.Z + wall.Size.Z/2

	closestX := common.Clamp(pos.X, minX, maxX)
	closestZ := common.Clamp(pos.Z, minZ, maxZ)

	dx := pos.X - closestX
	dz := pos.Z - closestZ
	dist := math.Hypot(dx, dz)

	switch {
	case dist == 0:
		// circle center inside the box: eject along the single axis with
		// the smallest distance to a side plane, first side wins ties
		sides := [4]float64{
			pos.X - minX, // left
			maxX - pos.X, // right
			pos.Z - minZ, // near
			maxZ - pos.Z, // far
		}
		best := 0
		for i := 1; i < 4; i++ {
			if sides[i] < sides[best] {
				best = i
			}
		}
		switch best {
		case 0:
			pos.X = minX - radius
		case 1:
			pos.X = maxX + radius
		case 2:
			pos.Z = minZ - radius
		case 3:
			pos.Z = maxZ + radius
		}
	case dist < radius:
		// overlapping from outside: push out along the contact normal by
		// the penetration depth
		depth := radius - dist
		pos.X += dx / dist * depth
		pos.Z += dz / dist * depth
	}

	return pos
}
