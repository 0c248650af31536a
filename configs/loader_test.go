package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
name?: string
limits?: [...int]
vm?: {
	cache_size?: int
	privileged?: bool
}
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var name string
	err := loader.AssignFirst("name", &name)
	if err != nil {
		t.Fatal(err)
	}
	if name != "echo" {
		t.Fatalf("got %q", name)
	}

	var limits []int
	err = loader.AssignFirst("limits", &limits)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", limits); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	var size int
	if err := loader.AssignFirst("vm.cache_size", &size); err != nil {
		t.Fatal(err)
	}
	if size != 64 {
		t.Fatalf("got %v", size)
	}

	err = loader.AssignFirst("not", &limits)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"test.cue",
		"test2.cue",
	}, testSchema)

	var names []string
	for value, err := range loader.IterCueValues("name") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		names = append(names, s)
	}
	if str := fmt.Sprintf("%v", names); str != "[echo cat]" {
		t.Fatalf("got %q", str)
	}

	// only the second file sets it
	if !First[bool](loader, "vm.privileged") {
		t.Fatal()
	}

}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader([]string{
		"not-exists.cue",
		"test2.cue",
	}, testSchema)
	files, err := loader.Files()
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", files); str != "[test2.cue]" {
		t.Fatalf("got %v", str)
	}
	if name := First[string](loader, "name"); name != "cat" {
		t.Fatalf("got %v", name)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}
