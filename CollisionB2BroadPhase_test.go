package box2d

import (
	"errors"
	"math/rand"
	"testing"
)

type pairKey struct{ a, b int }

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Records the live pairs reported by the broad phase.
type pairRecorder struct {
	t       *testing.T
	live    map[pairKey]bool
	added   int
	removed int
}

func newPairRecorder(t *testing.T) *pairRecorder {
	return &pairRecorder{t: t, live: make(map[pairKey]bool)}
}

func (r *pairRecorder) PairAdded(userData1, userData2 interface{}) interface{} {
	k := makePairKey(userData1.(int), userData2.(int))
	if r.live[k] {
		r.t.Errorf("pair %v added twice", k)
	}
	r.live[k] = true
	r.added++
	return k
}

func (r *pairRecorder) PairRemoved(userData1, userData2 interface{}, pairUserData interface{}) {
	k := makePairKey(userData1.(int), userData2.(int))
	if !r.live[k] {
		r.t.Errorf("pair %v removed without a matching add", k)
	}
	if pairUserData.(pairKey) != k {
		r.t.Errorf("pair user data %v, want %v", pairUserData, k)
	}
	delete(r.live, k)
	r.removed++
}

// Boxes snapped to a half-unit grid so quantization never changes an overlap.
func randomGridBox(rng *rand.Rand) B2AABB {
	x := float64(rng.Intn(80)) - 40.0
	y := float64(rng.Intn(80)) - 40.0
	w := 0.5 + float64(rng.Intn(8))
	h := 0.5 + float64(rng.Intn(8))
	return MakeB2AABBFromBounds(MakeB2Vec2(x+0.1, y+0.1), MakeB2Vec2(x+w-0.1, y+h-0.1))
}

func bruteForcePairs(boxes map[int]B2AABB) map[pairKey]bool {
	pairs := make(map[pairKey]bool)
	for a, boxA := range boxes {
		for b, boxB := range boxes {
			if a < b && B2TestOverlapBoundingBoxes(boxA, boxB) {
				pairs[pairKey{a, b}] = true
			}
		}
	}
	return pairs
}

func newTestBroadPhase(t *testing.T, callback B2PairCallback, maxProxies, maxPairs int) *B2BroadPhase {
	t.Helper()
	worldAABB := MakeB2AABBFromBounds(MakeB2Vec2(-50.0, -50.0), MakeB2Vec2(50.0, 50.0))
	bp, err := NewB2BroadPhaseWithCapacity(worldAABB, callback, maxProxies, maxPairs)
	if err != nil {
		t.Fatalf("NewB2BroadPhaseWithCapacity: %v", err)
	}
	return bp
}

func TestBroadPhaseMatchesBruteForce(t *testing.T) {
	rec := newPairRecorder(t)
	bp := newTestBroadPhase(t, rec, 256, 2048)
	rng := rand.New(rand.NewSource(7))

	boxes := make(map[int]B2AABB)
	proxies := make(map[int]int)
	nextKey := 0

	check := func(stage string) {
		t.Helper()
		bp.Validate()

		want := bruteForcePairs(boxes)
		got := make(map[pairKey]bool)
		for k := range rec.live {
			got[k] = true
		}

		if len(got) != len(want) {
			t.Fatalf("%s: %d live pairs, brute force finds %d", stage, len(got), len(want))
		}
		for k := range want {
			if !got[k] {
				t.Fatalf("%s: missing pair %v", stage, k)
			}
		}
		if bp.GetPairCount() != len(want) {
			t.Fatalf("%s: pair manager holds %d pairs, want %d", stage, bp.GetPairCount(), len(want))
		}
	}

	for i := 0; i < 100; i++ {
		box := randomGridBox(rng)
		id, err := bp.CreateProxy(box, nextKey)
		if err != nil {
			t.Fatalf("CreateProxy: %v", err)
		}
		boxes[nextKey] = box
		proxies[nextKey] = id
		nextKey++
	}
	check("create")

	for round := 0; round < 20; round++ {
		for key := range boxes {
			if rng.Intn(3) != 0 {
				continue
			}
			box := randomGridBox(rng)
			bp.MoveProxy(proxies[key], box)
			boxes[key] = box
		}
		if err := bp.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		check("move")

		// Destroy a few and recreate them elsewhere.
		for key := range boxes {
			if rng.Intn(10) != 0 {
				continue
			}
			if err := bp.DestroyProxy(proxies[key]); err != nil {
				t.Fatalf("DestroyProxy: %v", err)
			}
			delete(boxes, key)
			delete(proxies, key)
		}
		check("destroy")

		for len(boxes) < 100 {
			box := randomGridBox(rng)
			id, err := bp.CreateProxy(box, nextKey)
			if err != nil {
				t.Fatalf("CreateProxy: %v", err)
			}
			boxes[nextKey] = box
			proxies[nextKey] = id
			nextKey++
		}
		check("recreate")
	}

	if rec.added-rec.removed != len(rec.live) {
		t.Errorf("added %d removed %d but %d live", rec.added, rec.removed, len(rec.live))
	}
}

func TestBroadPhaseOneAddOneRemovePerEpisode(t *testing.T) {
	rec := newPairRecorder(t)
	bp := newTestBroadPhase(t, rec, 16, 64)

	if _, err := bp.CreateProxy(MakeB2AABBFromBounds(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 1.0)), 0); err != nil {
		t.Fatal(err)
	}
	b, err := bp.CreateProxy(MakeB2AABBFromBounds(MakeB2Vec2(10.0, 0.0), MakeB2Vec2(11.0, 1.0)), 1)
	if err != nil {
		t.Fatal(err)
	}

	// Slide b across a in small steps: one overlap episode.
	for x := 10.0; x >= -10.0; x -= 0.25 {
		bp.MoveProxy(b, MakeB2AABBFromBounds(MakeB2Vec2(x, 0.0), MakeB2Vec2(x+1.0, 1.0)))
		if err := bp.Commit(); err != nil {
			t.Fatal(err)
		}
	}

	if rec.added != 1 || rec.removed != 1 {
		t.Errorf("added=%d removed=%d, want one of each", rec.added, rec.removed)
	}

	// Move in and out before a commit: the pair is never reported.
	bp.MoveProxy(b, MakeB2AABBFromBounds(MakeB2Vec2(0.5, 0.0), MakeB2Vec2(1.5, 1.0)))
	bp.MoveProxy(b, MakeB2AABBFromBounds(MakeB2Vec2(20.0, 0.0), MakeB2Vec2(21.0, 1.0)))
	if err := bp.Commit(); err != nil {
		t.Fatal(err)
	}
	if rec.added != 1 || rec.removed != 1 {
		t.Errorf("transient overlap was reported: added=%d removed=%d", rec.added, rec.removed)
	}
}

func TestBroadPhaseQuery(t *testing.T) {
	rec := newPairRecorder(t)
	bp := newTestBroadPhase(t, rec, 16, 64)

	for i := 0; i < 5; i++ {
		x := float64(i) * 3.0
		if _, err := bp.CreateProxy(MakeB2AABBFromBounds(MakeB2Vec2(x, 0.0), MakeB2Vec2(x+1.0, 1.0)), i); err != nil {
			t.Fatal(err)
		}
	}

	found := bp.Query(MakeB2AABBFromBounds(MakeB2Vec2(2.5, -1.0), MakeB2Vec2(7.5, 2.0)), 10)
	got := map[int]bool{}
	for _, ud := range found {
		got[ud.(int)] = true
	}
	if len(got) != 2 || !got[1] || !got[2] {
		t.Errorf("query found %v, want proxies 1 and 2", got)
	}

	if n := len(bp.Query(MakeB2AABBFromBounds(MakeB2Vec2(-1.0, -1.0), MakeB2Vec2(20.0, 2.0)), 3)); n != 3 {
		t.Errorf("query capped at 3 returned %d", n)
	}
}

func TestBroadPhaseQueryMatchesBruteForce(t *testing.T) {
	rec := newPairRecorder(t)
	bp := newTestBroadPhase(t, rec, 128, 2048)
	rng := rand.New(rand.NewSource(11))

	boxes := make(map[int]B2AABB)
	proxies := make(map[int]int)
	for key := 0; key < 60; key++ {
		box := randomGridBox(rng)
		id, err := bp.CreateProxy(box, key)
		if err != nil {
			t.Fatal(err)
		}
		boxes[key] = box
		proxies[key] = id
	}

	for round := 0; round < 5; round++ {
		for i := 0; i < 40; i++ {
			query := randomGridBox(rng)

			want := make(map[int]bool)
			for key, box := range boxes {
				if B2TestOverlapBoundingBoxes(box, query) {
					want[key] = true
				}
			}

			got := make(map[int]bool)
			for _, ud := range bp.Query(query, len(boxes)) {
				key := ud.(int)
				if got[key] {
					t.Fatalf("round %d: proxy %d reported twice", round, key)
				}
				got[key] = true
			}

			if len(got) != len(want) {
				t.Fatalf("round %d: query %v found %d proxies, brute force finds %d", round, query, len(got), len(want))
			}
			for key := range want {
				if !got[key] {
					t.Fatalf("round %d: query %v missed proxy %d", round, query, key)
				}
			}
		}

		// Shuffle some proxies before the next round.
		for key := range boxes {
			if rng.Intn(2) == 0 {
				continue
			}
			box := randomGridBox(rng)
			bp.MoveProxy(proxies[key], box)
			boxes[key] = box
		}
		if err := bp.Commit(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBroadPhaseCapacityErrors(t *testing.T) {
	rec := newPairRecorder(t)
	bp := newTestBroadPhase(t, rec, 2, 64)

	box := MakeB2AABBFromBounds(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 1.0))
	for i := 0; i < 2; i++ {
		if _, err := bp.CreateProxy(box, i); err != nil {
			t.Fatalf("CreateProxy %d: %v", i, err)
		}
	}

	if _, err := bp.CreateProxy(box, 2); !errors.Is(err, ErrProxyCapacity) {
		t.Errorf("third proxy: err = %v, want ErrProxyCapacity", err)
	}

	inverted := MakeB2AABBFromBounds(MakeB2Vec2(1.0, 1.0), MakeB2Vec2(0.0, 0.0))
	if _, err := bp.CreateProxy(inverted, 3); !errors.Is(err, ErrInvalidAABB) {
		t.Errorf("inverted box: err = %v, want ErrInvalidAABB", err)
	}

	if _, err := NewB2BroadPhase(inverted, rec); !errors.Is(err, ErrInvalidAABB) {
		t.Errorf("inverted world: err = %v, want ErrInvalidAABB", err)
	}
}

func TestBroadPhasePairCapacity(t *testing.T) {
	rec := newPairRecorder(t)
	bp := newTestBroadPhase(t, rec, 16, 2)

	box := MakeB2AABBFromBounds(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 1.0))
	var lastErr error
	for i := 0; i < 4; i++ {
		if _, err := bp.CreateProxy(box, i); err != nil {
			lastErr = err
		}
	}

	if !errors.Is(lastErr, ErrPairCapacity) {
		t.Errorf("err = %v, want ErrPairCapacity", lastErr)
	}
	if bp.GetPairCount() > 2 {
		t.Errorf("pair count %d exceeds the pool", bp.GetPairCount())
	}

	// The overflow is reported once; a commit with no new pairs succeeds.
	if err := bp.Commit(); err != nil {
		t.Errorf("commit after the overflow: %v", err)
	}
}

func TestBroadPhaseInRange(t *testing.T) {
	bp := newTestBroadPhase(t, newPairRecorder(t), 4, 8)

	if !bp.InRange(MakeB2AABBFromBounds(MakeB2Vec2(-10.0, -10.0), MakeB2Vec2(10.0, 10.0))) {
		t.Errorf("box inside the world reported out of range")
	}
	if bp.InRange(MakeB2AABBFromBounds(MakeB2Vec2(60.0, 0.0), MakeB2Vec2(61.0, 1.0))) {
		t.Errorf("box outside the world reported in range")
	}
}
