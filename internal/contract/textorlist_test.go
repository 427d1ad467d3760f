package contract

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTextOrListUnmarshalString(t *testing.T) {
	var v TextOrList
	if err := json.Unmarshal([]byte(`"RSI below 30"`), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got, want := v.Lines(), []string{"RSI below 30"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
}

func TestTextOrListUnmarshalList(t *testing.T) {
	var v TextOrList
	if err := json.Unmarshal([]byte(`["RSI below 30","MA crossover"]`), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got, want := v.Lines(), []string{"RSI below 30", "MA crossover"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
}

func TestTextOrListRoundTripKeepsShape(t *testing.T) {
	cases := []string{
		`"single condition"`,
		`["a","b"]`,
	}
	for _, raw := range cases {
		var v TextOrList
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", raw, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%s) error = %v", raw, err)
		}
		if string(out) != raw {
			t.Fatalf("Marshal(%s) = %s, want same shape back", raw, out)
		}
	}
}

func TestTextOrListRejectsOtherShapes(t *testing.T) {
	var v TextOrList
	if err := json.Unmarshal([]byte(`{"nested":true}`), &v); err == nil {
		t.Fatal("Unmarshal(object) expected error, got nil")
	}
}

func TestTextOrListEmpty(t *testing.T) {
	var v TextOrList
	if !v.IsEmpty() {
		t.Fatal("zero TextOrList should be empty")
	}
	if got := v.Lines(); len(got) != 0 {
		t.Fatalf("Lines() = %v, want empty", got)
	}
}

func TestCloneParametersIndependent(t *testing.T) {
	s := Strategy{Parameters: map[string]float64{"ma_fast": 10}}
	cp := s.CloneParameters()
	cp["ma_fast"] = 99
	if s.Parameters["ma_fast"] != 10 {
		t.Fatalf("original mutated: ma_fast = %v, want 10", s.Parameters["ma_fast"])
	}
}
