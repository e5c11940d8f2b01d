package core

import "testing"

func TestParameterSnapshotLookupAndValues(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "World", Params: []Parameter{{Key: "size", Type: ParamTypeInt, Value: "129"}}},
		{Name: "Erosion", Params: []Parameter{{Key: "inertia", Type: ParamTypeFloat, Value: "0.05"}}},
	}}

	p, ok := snap.Lookup("inertia")
	if !ok || p.Value != "0.05" {
		t.Fatalf("lookup inertia: %+v %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatalf("lookup of a missing key should fail")
	}
	values := snap.Values()
	if len(values) != 2 || values["size"] != "129" || values["inertia"] != "0.05" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 2, Max: 8, HasMin: true, HasMax: true}
	cases := map[float64]float64{1: 2, 2: 2, 5: 5, 8: 8, 9: 8}
	for in, want := range cases {
		if got := c.Clamp(in); got != want {
			t.Fatalf("clamp(%v) = %v, want %v", in, got, want)
		}
	}
	open := ParameterControl{Max: 1, HasMax: true}
	if got := open.Clamp(-5); got != -5 {
		t.Fatalf("unbounded minimum should pass through, got %v", got)
	}
}

func TestRegistryIgnoresInvalidEntries(t *testing.T) {
	before := len(Generators())
	Register("", func(*Heightfield, map[string]string) (Generator, error) { return nil, nil })
	Register("nil-factory", nil)
	if len(Generators()) != before {
		t.Fatalf("invalid registrations should be ignored")
	}
	names := GeneratorNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
