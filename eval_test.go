package objpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type getTest struct {
	Expr   string
	Bean   any
	Want   any
	Absent bool
	Err    error
}

var getTests = []getTest{
	{
		Expr: "person.name",
		Bean: map[string]any{"person": map[string]any{"name": "looly", "age": 18}},
		Want: "looly",
	},
	{
		Expr: "persons[1]",
		Bean: map[string]any{"persons": []any{"a", "b", "c"}},
		Want: "b",
	},
	{
		Expr: "person.friends[1].name",
		Bean: map[string]any{"person": map[string]any{"friends": []any{
			map[string]any{"name": "jane"},
			map[string]any{"name": "joe"},
		}}},
		Want: "joe",
	},
	{
		Expr: "['person']['friends'][0]['name']",
		Bean: map[string]any{"person": map[string]any{"friends": []any{
			map[string]any{"name": "jane"},
		}}},
		Want: "jane",
	},
	{
		// a numeric dot segment resolves by position
		Expr: "friends.1",
		Bean: map[string]any{"friends": []any{"x", "y"}},
		Want: "y",
	},
	{
		Expr: "'a.b'.c",
		Bean: map[string]any{"a.b": map[string]any{"c": 1}},
		Want: 1,
	},
	{
		// present nil is not absent
		Expr: "a",
		Bean: map[string]any{"a": nil},
		Want: nil,
	},
	{
		Expr:   "b",
		Bean:   map[string]any{"a": 1},
		Absent: true,
	},
	{
		// reading through a missing intermediate yields absent, not an error
		Expr:   "a.b.c",
		Bean:   map[string]any{},
		Absent: true,
	},
	{
		Expr:   "a.b",
		Bean:   map[string]any{"a": nil},
		Absent: true,
	},
	{
		// out of range is absent
		Expr:   "a[9]",
		Bean:   map[string]any{"a": []any{1}},
		Absent: true,
	},
	{
		Expr: "a.b",
		Bean: map[string]any{"a": 5},
		Err:  ErrShape,
	},
	{
		Expr: "a.x",
		Bean: map[string]any{"a": []any{1, 2}},
		Err:  ErrShape,
	},
	{
		Expr: "a[0]",
		Bean: map[string]any{"a": "scalar"},
		Err:  ErrShape,
	},
	{
		// an index against a map falls back to the decimal key
		Expr: "a[3]",
		Bean: map[string]any{"a": map[string]any{"3": "three"}},
		Want: "three",
	},
	{
		Expr: "a[1:3]",
		Bean: map[string]any{"a": []any{0, 1, 2, 3, 4}},
		Want: []any{1, 2},
	},
	{
		Expr: "a[0:5:2]",
		Bean: map[string]any{"a": []any{0, 1, 2, 3, 4}},
		Want: []any{0, 2, 4},
	},
	{
		// range end clips to length
		Expr: "a[1:100]",
		Bean: map[string]any{"a": []any{0, 1, 2}},
		Want: []any{1, 2},
	},
	{
		Expr: "a[x,z]",
		Bean: map[string]any{"a": map[string]any{"x": 1, "y": 2, "z": 3}},
		Want: []any{1, 3},
	},
	{
		Expr: "a[0,2]",
		Bean: map[string]any{"a": []any{"p", "q", "r"}},
		Want: []any{"p", "r"},
	},
	{
		Expr: "a[?value > 3]",
		Bean: map[string]any{"a": []any{1, 4, 2, 5}},
		Want: []any{4, 5},
	},
	{
		Expr: "a[?age > 30]",
		Bean: map[string]any{"a": []any{
			map[string]any{"name": "jane", "age": 40},
			map[string]any{"name": "joe", "age": 20},
		}},
		Want: []any{map[string]any{"name": "jane", "age": 40}},
	},
}

func TestGet(t *testing.T) {
	for i := range getTests {
		gt := &getTests[i]
		v, err := Get(gt.Expr, gt.Bean)
		if gt.Err != nil {
			if !errors.Is(err, gt.Err) {
				t.Errorf("%q: got error %v, want %v", gt.Expr, err, gt.Err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", gt.Expr, err)
			continue
		}
		if gt.Absent {
			if !IsAbsent(v) {
				t.Errorf("%q: got %v, want absent", gt.Expr, v)
			}
			continue
		}
		if IsAbsent(v) {
			t.Errorf("%q: absent, want %v", gt.Expr, gt.Want)
			continue
		}
		if diff := cmp.Diff(gt.Want, v); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", gt.Expr, diff)
		}
	}
}

func TestGetIdempotent(t *testing.T) {
	bean := map[string]any{"a": []any{map[string]any{"b": 1}}}
	p := MustParse("a[0].b")
	v1, err := p.Get(bean)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := p.Get(bean)
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 {
		t.Errorf("got %v then %v", v1, v2)
	}
}

type setTest struct {
	Expr  string
	Bean  map[string]any
	Value any
	Want  map[string]any
}

var setTests = []setTest{
	{
		Expr:  "a",
		Bean:  map[string]any{},
		Value: 5,
		Want:  map[string]any{"a": 5},
	},
	{
		Expr:  "a.b",
		Bean:  map[string]any{},
		Value: 5,
		Want:  map[string]any{"a": map[string]any{"b": 5}},
	},
	{
		// the next segment is indexed, so the intermediate is a sequence
		Expr:  "a[0]",
		Bean:  map[string]any{},
		Value: 5,
		Want:  map[string]any{"a": []any{5}},
	},
	{
		// a numeric dot segment vivifies a sequence as well
		Expr:  "a.0",
		Bean:  map[string]any{},
		Value: 5,
		Want:  map[string]any{"a": []any{5}},
	},
	{
		Expr:  "a.b[1].c",
		Bean:  map[string]any{},
		Value: "x",
		Want: map[string]any{"a": map[string]any{"b": []any{
			nil,
			map[string]any{"c": "x"},
		}}},
	},
	{
		Expr:  "a.b",
		Bean:  map[string]any{"a": map[string]any{"b": 1, "keep": 2}},
		Value: 3,
		Want:  map[string]any{"a": map[string]any{"b": 3, "keep": 2}},
	},
	{
		// growth past the end pads with nil and replaces the slice
		Expr:  "a[3]",
		Bean:  map[string]any{"a": []any{1}},
		Value: 9,
		Want:  map[string]any{"a": []any{1, nil, nil, 9}},
	},
	{
		Expr:  "a[0]",
		Bean:  map[string]any{"a": []any{1, 2}},
		Value: 7,
		Want:  map[string]any{"a": []any{7, 2}},
	},
}

func TestSet(t *testing.T) {
	for i := range setTests {
		st := &setTests[i]
		res, err := Set(st.Expr, st.Bean, st.Value)
		if err != nil {
			t.Errorf("%q: %v", st.Expr, err)
			continue
		}
		if diff := cmp.Diff(st.Want, res); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", st.Expr, diff)
		}
		// a map root is always mutated in place
		if diff := cmp.Diff(st.Want, st.Bean); diff != "" {
			t.Errorf("%q: original bean (-want +got)\n%s", st.Expr, diff)
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	exprs := []string{"a", "a.b", "a[0]", "a.b[2].c", "x.y.z"}
	for _, expr := range exprs {
		bean := map[string]any{}
		if _, err := Set(expr, bean, "v"); err != nil {
			t.Errorf("set %q: %v", expr, err)
			continue
		}
		got, err := Get(expr, bean)
		if err != nil {
			t.Errorf("get %q: %v", expr, err)
			continue
		}
		if got != "v" {
			t.Errorf("%q: round trip gave %v", expr, got)
		}
	}
}

func TestSetRootReplacement(t *testing.T) {
	root := []any{}
	res, err := Set("[2]", root, 7)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := res.([]any)
	if !ok {
		t.Fatalf("got %T, want []any", res)
	}
	if diff := cmp.Diff([]any{nil, nil, 7}, out); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if len(root) != 0 {
		t.Errorf("original root grew in place to %v", root)
	}
}

func TestSetSameContainerReturned(t *testing.T) {
	bean := map[string]any{}
	res, err := Set("a.b", bean, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !sameContainer(res, bean) {
		t.Errorf("map root was replaced: %v", res)
	}
}

func TestSetNilRoot(t *testing.T) {
	if _, err := Set("a", nil, 1); !errors.Is(err, ErrNilContainer) {
		t.Errorf("got %v, want ErrNilContainer", err)
	}
}

func TestSetReadOnlyNodes(t *testing.T) {
	for _, expr := range []string{"a[1:3]", "a[x,y]", "a[?value > 1]"} {
		bean := map[string]any{"a": []any{1, 2, 3}}
		if _, err := Set(expr, bean, 9); !errors.Is(err, ErrReadOnly) {
			t.Errorf("%q: got %v, want ErrReadOnly", expr, err)
		}
	}
}

// doubleNode stores values under "d" in a fresh copy of its container, the
// way a fixed-size sequence set replaces its container on growth.
type doubleNode struct{}

func (doubleNode) String() string { return "<double>" }

func (doubleNode) Get(container any) (any, error) {
	m, ok := container.(map[string]any)
	if !ok {
		return Absent, nil
	}
	v, ok := m["d"]
	if !ok {
		return Absent, nil
	}
	return v, nil
}

func (doubleNode) Set(container, value any) (any, error) {
	m, _ := container.(map[string]any)
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["d"] = value
	return out, nil
}

func TestSetReplacementFromNode(t *testing.T) {
	orig := map[string]any{"keep": true}

	// terminal write: the replacement is handed straight back
	p := &Path{node: doubleNode{}}
	res, err := p.Set(orig, 1)
	if err != nil {
		t.Fatal(err)
	}
	if sameContainer(res, orig) {
		t.Fatal("terminal set did not replace the container")
	}
	if res.(map[string]any)["d"] != 1 || !res.(map[string]any)["keep"].(bool) {
		t.Errorf("replacement content wrong: %v", res)
	}

	// mid-chain: vivification through a replacing setter must re-read and
	// return the replacement as the new top container
	p = &Path{node: doubleNode{}, child: "x"}
	res, err = p.Set(orig, "deep")
	if err != nil {
		t.Fatal(err)
	}
	if sameContainer(res, orig) {
		t.Fatal("set did not surface the replaced container")
	}
	sub, ok := res.(map[string]any)["d"].(map[string]any)
	if !ok {
		t.Fatalf("vivified intermediate is %T, want map", res.(map[string]any)["d"])
	}
	if sub["x"] != "deep" {
		t.Errorf("leaf value %v, want \"deep\"", sub["x"])
	}
	if _, ok := orig["d"]; ok {
		t.Error("original container was mutated")
	}
}

func TestSetTypedContainers(t *testing.T) {
	bean := map[string]any{"a": []int{1, 2, 3}}
	if _, err := Set("a[1]", bean, 9); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 9, 3}, bean["a"]); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	counts := map[string]int{}
	if _, err := Set("n", counts, 4); err != nil {
		t.Fatal(err)
	}
	if counts["n"] != 4 {
		t.Errorf("counts = %v", counts)
	}

	// growth of a typed slice propagates the replacement into the parent
	bean = map[string]any{"a": []int{1}}
	if _, err := Set("a[2]", bean, 5); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 0, 5}, bean["a"]); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

type person struct {
	Name    string
	Age     int `path:"age"`
	Friends []any
}

func TestGetSetStructs(t *testing.T) {
	bean := map[string]any{"person": &person{
		Name:    "looly",
		Age:     18,
		Friends: []any{&person{Name: "jane"}},
	}}
	v, err := Get("person.Name", bean)
	if err != nil {
		t.Fatal(err)
	}
	if v != "looly" {
		t.Errorf("Name = %v", v)
	}
	v, err = Get("person.age", bean)
	if err != nil {
		t.Fatal(err)
	}
	if v != 18 {
		t.Errorf("age = %v", v)
	}
	v, err = Get("person.Friends[0].Name", bean)
	if err != nil {
		t.Fatal(err)
	}
	if v != "jane" {
		t.Errorf("friend name = %v", v)
	}
	if _, err := Set("person.Name", bean, "larry"); err != nil {
		t.Fatal(err)
	}
	if p := bean["person"].(*person); p.Name != "larry" {
		t.Errorf("Name = %q after set", p.Name)
	}
	// indexed access into a bean with no sequence semantics
	if _, err := Get("person[0]", bean); !errors.Is(err, ErrShape) {
		t.Errorf("got %v, want ErrShape", err)
	}
}
