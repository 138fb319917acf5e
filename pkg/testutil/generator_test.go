package testutil

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNewMapReaderRegistersAncestors(t *testing.T) {
	r := NewMapReader("/home/user/src", "/bin")

	tests := []struct {
		dir  string
		want []string
	}{
		{"/", []string{"home", "bin"}},
		{"/home", []string{"user"}},
		{"/home/user", []string{"src"}},
		{"/home/user/src", []string{}},
		{"/bin", []string{}},
	}
	for _, tt := range tests {
		got, err := r.ReadDir(tt.dir)
		if err != nil {
			t.Fatalf("ReadDir(%q): %v", tt.dir, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ReadDir(%q) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestMapReaderUnknownAndFailing(t *testing.T) {
	r := NewMapReader("/etc")
	if _, err := r.ReadDir("/nope"); !errors.Is(err, ErrNoSuchDir) {
		t.Errorf("unknown dir error = %v, want ErrNoSuchDir", err)
	}

	denied := errors.New("permission denied")
	r.FailWith("/etc", denied)
	if _, err := r.ReadDir("/etc"); !errors.Is(err, denied) {
		t.Errorf("failing dir error = %v, want %v", err, denied)
	}
}

func TestMapReaderCountsCalls(t *testing.T) {
	r := NewMapReader("/a")
	_, _ = r.ReadDir("/")
	_, _ = r.ReadDir("/")
	_, _ = r.ReadDir("/a")

	if r.Calls("/") != 2 || r.Calls("/a") != 1 {
		t.Errorf("calls = %d, %d; want 2, 1", r.Calls("/"), r.Calls("/a"))
	}
	if r.TotalCalls() != 3 {
		t.Errorf("TotalCalls = %d, want 3", r.TotalCalls())
	}
}

func TestMapReaderReturnsCopy(t *testing.T) {
	r := NewMapReader("/a", "/b")
	got, _ := r.ReadDir("/")
	got[0] = "mutated"

	again, _ := r.ReadDir("/")
	if again[0] != "a" {
		t.Errorf("reader state mutated through result: %v", again)
	}
}

func TestDeterminism(t *testing.T) {
	a := New(DefaultConfig()).Tree()
	b := New(DefaultConfig()).Tree()
	if a.String() != b.String() {
		t.Error("same seed produced different trees")
	}
}

func TestGeneratorRespectsLimits(t *testing.T) {
	cfg := GeneratorConfig{Seed: 7, MaxDepth: 3, MaxFanout: 4}
	r := New(cfg).Tree()

	for _, dir := range r.Dirs() {
		if depth := strings.Count(strings.Trim(dir, "/"), "/") + 1; dir != "/" && depth > cfg.MaxDepth {
			t.Errorf("%s is %d levels deep, max %d", dir, depth, cfg.MaxDepth)
		}
		children, _ := r.ReadDir(dir)
		if len(children) > cfg.MaxFanout {
			t.Errorf("%s has %d children, max %d", dir, len(children), cfg.MaxFanout)
		}
	}
}

func TestWide(t *testing.T) {
	r := Wide(3)
	got, _ := r.ReadDir("/")
	if want := []string{"d000", "d001", "d002"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wide(3) children = %v, want %v", got, want)
	}
}

func TestDrawTreeSiblingNamesUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DrawTree(t, 3, 4)
		for _, dir := range r.Dirs() {
			children, err := r.ReadDir(dir)
			if err != nil {
				t.Fatalf("ReadDir(%q): %v", dir, err)
			}
			seen := make(map[string]bool)
			for _, c := range children {
				if seen[c] {
					t.Fatalf("duplicate child %q under %q", c, dir)
				}
				seen[c] = true
			}
		}
	})
}
