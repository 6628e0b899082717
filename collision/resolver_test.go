package collision

import (
	"math"
	"testing"

	"mazewalker/common"
	"mazewalker/spatial"
)

func newTestResolver() *Resolver {
	return NewResolver(Config{MaxCheckDistance: 4})
}

func TestResolveWithoutPlayerIsPassThrough(t *testing.T) {
	r := newTestResolver()
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})

	proposed := common.Vec3{X: 0.1, Y: 1, Z: 0.1}
	if got := r.Resolve(common.Vec3{}, proposed); got != proposed {
		t.Fatalf("expected pass-through without player collider, got %+v", got)
	}
}

func TestResolveIdempotentOnNonOverlap(t *testing.T) {
	r := newTestResolver()
	r.SetPlayerCollider(common.Vec3{X: 5, Z: 5}, 0.5, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})

	proposed := common.Vec3{X: 5, Y: 0.9, Z: 5}
	if got := r.Resolve(common.Vec3{X: 5, Y: 0.9, Z: 5}, proposed); got != proposed {
		t.Fatalf("non-overlapping proposal must be unmodified, got %+v", got)
	}
}

func TestResolvePushOutPenetrationDepth(t *testing.T) {
	r := newTestResolver()
	r.SetPlayerCollider(common.Vec3{Z: 3}, 0.5, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})

	// proposed overlaps the +Z face by 0.2 (closest point z=1, dist=0.3)
	current := common.Vec3{Z: 1.6}
	proposed := common.Vec3{Z: 1.3}
	got := r.Resolve(current, proposed)

	if math.Abs(got.Z-1.5) > 1e-9 {
		t.Fatalf("expected push-out to z=1.5, got z=%v", got.Z)
	}
	if got.X != 0 {
		t.Fatalf("push-out should stay on the approach axis, got x=%v", got.X)
	}
}

func TestResolveNeverTunnels(t *testing.T) {
	r := newTestResolver()
	const radius = 0.5
	r.SetPlayerCollider(common.Vec3{Z: 3}, radius, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})

	// march from (0,3) toward the box in fixed steps smaller than the box
	pos := common.Vec3{Z: 3}
	const step = 0.3
	for i := 0; i < 40; i++ {
		proposed := common.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z - step}
		pos = r.Resolve(pos, proposed)
		r.UpdatePlayerPosition(pos)

		// distance from the box surface must never drop below the radius
		closestZ := common.Clamp(pos.Z, -1, 1)
		closestX := common.Clamp(pos.X, -1, 1)
		dist := math.Hypot(pos.X-closestX, pos.Z-closestZ)
		if dist < radius-1e-6 {
			t.Fatalf("step %d: penetrated to dist=%v (pos %+v)", i, dist, pos)
		}
	}
	if pos.Z < 1.5-1e-9 {
		t.Fatalf("player ended inside the wall margin: z=%v", pos.Z)
	}
}

func TestAxisEjectionDeterminism(t *testing.T) {
	r := newTestResolver()
	const radius = 0.5
	r.SetPlayerCollider(common.Vec3{}, radius, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 4, Y: 2, Z: 2})

	// exactly at the center of a box wider in X: must eject along Z, and
	// the near side wins the tie, landing at boxMin.z - radius
	got := r.Resolve(common.Vec3{}, common.Vec3{})
	want := common.Vec3{X: 0, Y: 0, Z: -1 - radius}
	if got != want {
		t.Fatalf("axis ejection: got %+v, want %+v", got, want)
	}
}

func TestAxisEjectionPicksNearerSide(t *testing.T) {
	r := newTestResolver()
	const radius = 0.5
	r.SetPlayerCollider(common.Vec3{}, radius, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 4, Y: 2, Z: 2})

	// nudged toward +Z inside the box: far side is nearer
	got := r.Resolve(common.Vec3{Z: 0.25}, common.Vec3{Z: 0.25})
	if got.Z != 1+radius || got.X != 0 {
		t.Fatalf("expected ejection to z=%v, got %+v", 1+radius, got)
	}
}

func TestResolveRestoresCurrentY(t *testing.T) {
	r := newTestResolver()
	r.SetPlayerCollider(common.Vec3{}, 0.5, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})

	cases := []struct {
		name              string
		current, proposed common.Vec3
	}{
		{"overlap", common.Vec3{Y: 0.9, Z: 1.6}, common.Vec3{Y: 0.7, Z: 1.3}},
		{"no_overlap", common.Vec3{Y: 1.2, Z: 5}, common.Vec3{Y: 0.4, Z: 5}},
		{"inside", common.Vec3{Y: 2.5}, common.Vec3{Y: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := r.Resolve(c.current, c.proposed)
			if got.Y != c.current.Y {
				t.Fatalf("Y must equal current.Y=%v exactly, got %v", c.current.Y, got.Y)
			}
		})
	}
}

func TestResolveUsesSpatialGridBroadPhase(t *testing.T) {
	r := NewResolver(Config{MaxCheckDistance: 2})
	r.SetPlayerCollider(common.Vec3{X: 10, Z: 10}, 0.5, 1.8)

	g := spatial.NewGrid(4, 40, 40)
	near := r.AddWallCollider(common.Vec3{X: 10, Z: 11}, common.Vec3{X: 2, Y: 2, Z: 2})
	far := r.AddWallCollider(common.Vec3{X: 30, Z: 30}, common.Vec3{X: 2, Y: 2, Z: 2})
	g.Insert(near, 10, 11)
	g.Insert(far, 30, 30)
	// a grid payload that is not a wall handle must be ignored
	g.Insert(999, 10, 10)
	r.SetSpatialGrid(g)

	proposed := common.Vec3{X: 10, Z: 10.3}
	got := r.Resolve(common.Vec3{X: 10, Z: 10}, proposed)
	if got.Z >= 10.3 {
		t.Fatalf("near wall should still correct the position, got %+v", got)
	}

	// with only the far wall indexed, the same proposal passes through
	g.Clear()
	g.Insert(far, 30, 30)
	if got := r.Resolve(common.Vec3{X: 10, Z: 10}, proposed); got != proposed {
		t.Fatalf("broad-phase should skip unindexed walls, got %+v", got)
	}
}

func TestSequentialAccumulation(t *testing.T) {
	r := newTestResolver()
	r.SetPlayerCollider(common.Vec3{}, 0.5, 1.8)

	// two abutting boxes forming a flat wall along X; walking into the seam
	// must resolve against both in registration order and end outside
	r.AddWallCollider(common.Vec3{X: -1}, common.Vec3{X: 2, Y: 2, Z: 2})
	r.AddWallCollider(common.Vec3{X: 1}, common.Vec3{X: 2, Y: 2, Z: 2})

	got := r.Resolve(common.Vec3{Z: 1.6}, common.Vec3{Z: 1.2})
	if got.Z < 1.5-1e-9 {
		t.Fatalf("seam resolution left the player overlapping: %+v", got)
	}

	// run twice to confirm iteration order keeps results deterministic
	again := r.Resolve(common.Vec3{Z: 1.6}, common.Vec3{Z: 1.2})
	if got != again {
		t.Fatalf("resolution is not deterministic: %+v vs %+v", got, again)
	}
}

func TestClearResetsFully(t *testing.T) {
	r := newTestResolver()
	r.SetPlayerCollider(common.Vec3{Z: 3}, 0.5, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})

	r.Clear()

	// no player collider survives Clear, so any input passes through
	proposed := common.Vec3{Z: 0.2}
	if got := r.Resolve(common.Vec3{Z: 3}, proposed); got != proposed {
		t.Fatalf("expected pass-through after Clear, got %+v", got)
	}
	if r.WallCount() != 0 || r.Player() != nil {
		t.Fatalf("Clear left state behind: walls=%d player=%v", r.WallCount(), r.Player())
	}

	// re-adding colliders behaves identically to a fresh instance
	r.SetPlayerCollider(common.Vec3{Z: 3}, 0.5, 1.8)
	r.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})
	reused := r.Resolve(common.Vec3{Z: 1.6}, common.Vec3{Z: 1.3})

	fresh := newTestResolver()
	fresh.SetPlayerCollider(common.Vec3{Z: 3}, 0.5, 1.8)
	fresh.AddWallCollider(common.Vec3{}, common.Vec3{X: 2, Y: 2, Z: 2})
	if want := fresh.Resolve(common.Vec3{Z: 1.6}, common.Vec3{Z: 1.3}); reused != want {
		t.Fatalf("reused resolver diverged from fresh one: %+v vs %+v", reused, want)
	}
}

func TestExtractFromLevel(t *testing.T) {
	r := newTestResolver()
	src := stubWallSource{
		{Kind: ShapeBox, Center: common.Vec3{X: 1, Y: 1, Z: 1}, Size: common.Vec3{X: 2, Y: 2, Z: 2}},
		{Kind: ShapeBox, Center: common.Vec3{X: 3, Y: 1, Z: 1}, Size: common.Vec3{X: 2, Y: 2, Z: 2}},
	}

	handles := r.ExtractFromLevel(src)
	if len(handles) != 2 || r.WallCount() != 2 {
		t.Fatalf("expected 2 registered walls, got handles=%v count=%d", handles, r.WallCount())
	}
	for i, h := range handles {
		wall, ok := r.Wall(h)
		if !ok || wall.Center != src[i].Center {
			t.Fatalf("handle %d does not round-trip its wall", h)
		}
	}
}

type stubWallSource []Shape

func (s stubWallSource) WallBoxes() []Shape { return s }
