package opencl

import "testing"

func TestToneOperatorIDs(t *testing.T) {
	// These values are baked into the tonemapResolve kernel switch.
	type spec struct {
		op    ToneOperator
		expID int32
	}

	specs := []spec{
		{ToneLinear, 0},
		{ToneReinhard, 1},
		{ToneFilmic, 2},
		{ToneACES, 3},
	}

	for _, s := range specs {
		if int32(s.op) != s.expID {
			t.Fatalf("expected %s to map to kernel id %d; got %d", s.op, s.expID, int32(s.op))
		}
	}
}

func TestParseToneOperator(t *testing.T) {
	type spec struct {
		name  string
		expOp ToneOperator
	}

	specs := []spec{
		{"linear", ToneLinear},
		{"reinhard", ToneReinhard},
		{"filmic", ToneFilmic},
		{"aces", ToneACES},
		// Unrecognized names fall back to reinhard.
		{"bogus", ToneReinhard},
		{"", ToneReinhard},
	}

	for _, s := range specs {
		if got := ParseToneOperator(s.name); got != s.expOp {
			t.Fatalf("[%s] expected operator %s; got %s", s.name, s.expOp, got)
		}
	}
}

func TestToneOperatorCycleOrder(t *testing.T) {
	op := ToneLinear
	expOrder := []ToneOperator{ToneReinhard, ToneFilmic, ToneACES, ToneLinear}

	for _, exp := range expOrder {
		op = op.Next()
		if op != exp {
			t.Fatalf("expected next operator %s; got %s", exp, op)
		}
	}
}
