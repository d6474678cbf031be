package registry

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func testLevel(id string) Factory {
	return func() Level {
		return Level{
			ID:    id,
			Title: "Test " + id,
			Platforms: []core.Rect{
				core.NewRect(0, 100, 200, 10),
				core.NewRect(20, 60, 50, 5),
			},
			StartX:        30,
			StartPlatform: 1,
		}
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("reg-test-a", testLevel("reg-test-a"))

	if !Exists("reg-test-a") {
		t.Fatal("Exists() = false after Register")
	}

	lvl, err := Create("reg-test-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if lvl.Title != "Test reg-test-a" {
		t.Errorf("Title = %q, expected %q", lvl.Title, "Test reg-test-a")
	}

	// Mutating one copy must not leak into the next
	lvl.Platforms[0].X = 999
	again, _ := Create("reg-test-a")
	if again.Platforms[0].X != 0 {
		t.Errorf("Platforms shared between Create calls: X = %d", again.Platforms[0].X)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() expected error for unknown id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("reg-test-dup", testLevel("reg-test-dup"))
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("reg-test-dup", testLevel("reg-test-dup"))
}

func TestListSorted(t *testing.T) {
	Register("reg-test-z", testLevel("reg-test-z"))
	Register("reg-test-b", testLevel("reg-test-b"))

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %s >= %s", list[i-1].ID, list[i].ID)
		}
	}
}

func TestLevelValidateAndStart(t *testing.T) {
	lvl := testLevel("v")()
	if err := lvl.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	start := lvl.StartRect(10, 20)
	if start.X != 30 || start.Bottom() != 60 {
		t.Errorf("StartRect = %+v, expected x=30 bottom=60", start)
	}

	lvl.StartPlatform = 5
	if err := lvl.Validate(); err == nil {
		t.Error("Validate() expected error for bad start platform")
	}

	lvl = Level{ID: "empty"}
	if err := lvl.Validate(); err == nil {
		t.Error("Validate() expected error for no platforms")
	}
}
