package box2d

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMat22SolveMatchesInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		c1 := MakeB2Vec2(rng.Float64()*4.0-2.0, rng.Float64()*4.0-2.0)
		c2 := MakeB2Vec2(rng.Float64()*4.0-2.0, rng.Float64()*4.0-2.0)
		b := MakeB2Vec2(rng.Float64()*10.0-5.0, rng.Float64()*10.0-5.0)

		A := MakeB2Mat22FromColumns(c1, c2)
		ref := mgl64.Mat2FromCols(mgl64.Vec2{c1.X, c1.Y}, mgl64.Vec2{c2.X, c2.Y})
		if math.Abs(ref.Det()) < 1e-3 {
			continue
		}

		want := ref.Inv().Mul2x1(mgl64.Vec2{b.X, b.Y})
		got := A.Solve(b)
		if !closeTo(got.X, want[0], 1e-9) || !closeTo(got.Y, want[1], 1e-9) {
			t.Fatalf("Solve = %v, want %v", got, want)
		}

		inv := A.GetInverse()
		refInv := ref.Inv()
		if !closeTo(inv.Col1.X, refInv.At(0, 0), 1e-9) || !closeTo(inv.Col2.X, refInv.At(0, 1), 1e-9) ||
			!closeTo(inv.Col1.Y, refInv.At(1, 0), 1e-9) || !closeTo(inv.Col2.Y, refInv.At(1, 1), 1e-9) {
			t.Fatalf("GetInverse = %v, want %v", inv, refInv)
		}

		// A * x reproduces b.
		back := B2Vec2Mat22Mul(A, got)
		if !closeTo(back.X, b.X, 1e-9) || !closeTo(back.Y, b.Y, 1e-9) {
			t.Fatalf("A*x = %v, want %v", back, b)
		}
	}
}

func TestMat33SolveMatchesInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	rnd := func() float64 { return rng.Float64()*4.0 - 2.0 }

	for i := 0; i < 100; i++ {
		c1 := MakeB2Vec3(rnd(), rnd(), rnd())
		c2 := MakeB2Vec3(rnd(), rnd(), rnd())
		c3 := MakeB2Vec3(rnd(), rnd(), rnd())
		b := MakeB2Vec3(rnd(), rnd(), rnd())

		A := MakeB2Mat33FromColumns(c1, c2, c3)
		ref := mgl64.Mat3FromCols(
			mgl64.Vec3{c1.X, c1.Y, c1.Z},
			mgl64.Vec3{c2.X, c2.Y, c2.Z},
			mgl64.Vec3{c3.X, c3.Y, c3.Z},
		)
		if math.Abs(ref.Det()) < 1e-3 {
			continue
		}

		want := ref.Inv().Mul3x1(mgl64.Vec3{b.X, b.Y, b.Z})
		got := A.Solve33(b)
		if !closeTo(got.X, want[0], 1e-8) || !closeTo(got.Y, want[1], 1e-8) || !closeTo(got.Z, want[2], 1e-8) {
			t.Fatalf("Solve33 = %v, want %v", got, want)
		}

		// Solve22 only looks at the upper-left block.
		ref2 := mgl64.Mat2FromCols(mgl64.Vec2{c1.X, c1.Y}, mgl64.Vec2{c2.X, c2.Y})
		if math.Abs(ref2.Det()) < 1e-3 {
			continue
		}
		want2 := ref2.Inv().Mul2x1(mgl64.Vec2{b.X, b.Y})
		got2 := A.Solve22(MakeB2Vec2(b.X, b.Y))
		if !closeTo(got2.X, want2[0], 1e-8) || !closeTo(got2.Y, want2[1], 1e-8) {
			t.Fatalf("Solve22 = %v, want %v", got2, want2)
		}
	}
}

func TestSingularSolveIsZero(t *testing.T) {
	A := MakeB2Mat22FromScalars(1.0, 2.0, 2.0, 4.0)
	if got := A.Solve(MakeB2Vec2(1.0, 1.0)); got != MakeB2Vec2(0.0, 0.0) {
		t.Errorf("singular Solve = %v, want zero", got)
	}

	var B B2Mat33
	if got := B.Solve33(MakeB2Vec3(1.0, 2.0, 3.0)); got != MakeB2Vec3(0.0, 0.0, 0.0) {
		t.Errorf("singular Solve33 = %v, want zero", got)
	}
}

func TestRotationMatchesMathgl(t *testing.T) {
	for _, angle := range []float64{0.0, 0.3, -1.2, 2.5, B2_pi} {
		R := MakeB2Mat22FromAngle(angle)
		ref := mgl64.Rotate2D(angle)
		v := MakeB2Vec2(1.5, -0.5)

		got := B2Vec2Mat22Mul(R, v)
		want := ref.Mul2x1(mgl64.Vec2{v.X, v.Y})
		if !closeTo(got.X, want[0], 1e-12) || !closeTo(got.Y, want[1], 1e-12) {
			t.Errorf("angle %v: R*v = %v, want %v", angle, got, want)
		}

		back := B2Vec2Mat22MulT(R, got)
		if !closeTo(back.X, v.X, 1e-12) || !closeTo(back.Y, v.Y, 1e-12) {
			t.Errorf("angle %v: R^T*R*v = %v, want %v", angle, back, v)
		}

		if a := R.GetAngle(); math.Abs(math.Remainder(a-angle, 2.0*B2_pi)) > 1e-12 {
			t.Errorf("GetAngle = %v, want %v", a, angle)
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	xf := MakeB2TransformByPositionAndAngle(MakeB2Vec2(3.0, -2.0), 0.7)
	p := MakeB2Vec2(-1.0, 4.0)

	back := B2TransformVec2MulT(xf, B2TransformVec2Mul(xf, p))
	if B2Vec2Distance(back, p) > 1e-12 {
		t.Errorf("MulT(Mul(p)) = %v, want %v", back, p)
	}
	if math.Abs(xf.GetAngle()-0.7) > 1e-12 {
		t.Errorf("GetAngle = %v", xf.GetAngle())
	}
}

func TestSweepAdvance(t *testing.T) {
	sweep := B2Sweep{
		LocalCenter: MakeB2Vec2(0.5, 0.0),
		C0:          MakeB2Vec2(0.0, 0.0),
		C:           MakeB2Vec2(4.0, 2.0),
		A0:          0.0,
		A:           1.0,
	}

	var before B2Transform
	sweep.GetTransform(&before, 0.5)

	sweep.Advance(0.5)
	if sweep.Alpha0 != 0.5 {
		t.Fatalf("Alpha0 = %v, want 0.5", sweep.Alpha0)
	}
	if B2Vec2Distance(sweep.C0, MakeB2Vec2(2.0, 1.0)) > 1e-12 || math.Abs(sweep.A0-0.5) > 1e-12 {
		t.Errorf("advanced sweep C0=%v A0=%v", sweep.C0, sweep.A0)
	}

	// Advancing does not move the motion path.
	var after B2Transform
	sweep.GetTransform(&after, 0.5)
	if B2Vec2Distance(before.P, after.P) > 1e-12 || math.Abs(before.GetAngle()-after.GetAngle()) > 1e-12 {
		t.Errorf("transform at 0.5 moved from %v to %v", before, after)
	}

	var end B2Transform
	sweep.GetTransform(&end, 1.0)
	center := B2TransformVec2Mul(end, sweep.LocalCenter)
	if B2Vec2Distance(center, sweep.C) > 1e-12 {
		t.Errorf("center at t=1 is %v, want %v", center, sweep.C)
	}

	// Going backwards is ignored.
	sweep.Advance(0.25)
	if sweep.Alpha0 != 0.5 {
		t.Errorf("Advance(0.25) changed Alpha0 to %v", sweep.Alpha0)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	for _, tc := range []struct{ in, want uint32 }{
		{1, 2}, {2, 4}, {3, 4}, {5, 8}, {1000, 1024},
	} {
		if got := B2NextPowerOfTwo(tc.in); got != tc.want {
			t.Errorf("B2NextPowerOfTwo(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if !B2IsPowerOfTwo(64) || B2IsPowerOfTwo(65) {
		t.Errorf("B2IsPowerOfTwo is wrong")
	}
}
