package ident

import (
	"reflect"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ruby", "ruby"},
		{"Ruby Ore", "ruby_ore"},
		{"Apple-Pie!", "applepie"},
		{"  spaced  ", "__spaced__"},
		{"already_ok", "already_ok"},
		{"Ünïcode Thing", "ncode_thing"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeID(tt.in)
			if got != tt.want {
				t.Fatalf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := NormalizeID(got); again != got {
				t.Fatalf("NormalizeID is not idempotent: %q → %q", got, again)
			}
		})
	}
}

func TestConstantName(t *testing.T) {
	if got := ConstantName("Ruby Ore"); got != "RUBY_ORE" {
		t.Fatalf("expected RUBY_ORE, got %s", got)
	}
	if got := ConstantName("golden apple #2"); got != "GOLDEN_APPLE_2" {
		t.Fatalf("expected GOLDEN_APPLE_2, got %s", got)
	}
}

func TestModID(t *testing.T) {
	if got := ModID("Test Mod"); got != "testmod" {
		t.Fatalf("expected testmod, got %s", got)
	}
	if got := SafeModID("!!!"); got != "mod" {
		t.Fatalf("expected fallback mod, got %s", got)
	}
	if got := SafeModID("1337 Mod"); got != "_1337mod" {
		t.Fatalf("expected _1337mod, got %s", got)
	}
}

func TestEntryPointName(t *testing.T) {
	tests := map[string]string{
		"Test Mod":    "TestMod",
		"test mod":    "TestMod",
		"TEST MOD":    "TestMod",
		"my cool-mod": "MyCoolmod",
	}
	for in, want := range tests {
		if got := EntryPointName(in); got != want {
			t.Errorf("EntryPointName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestArchiveBaseName(t *testing.T) {
	if got := ArchiveBaseName("Test Mod"); got != "test-mod" {
		t.Fatalf("expected test-mod, got %s", got)
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name    string
		website string
		authors []string
		mod     string
		want    string
	}{
		{"author", "", []string{"Alice"}, "Test Mod", "alice.test.mod"},
		{"website", "https://alice.dev/mods", []string{"Alice"}, "Test Mod", "dev.alice.mods"},
		{"website trailing slash", "https://my-site.example.com/", nil, "X", "com.example.my_site"},
		{"digit segment", "", []string{"Bob"}, "2 Fast", "bob._2.fast"},
		{"empty", "", nil, "", "net.modkit.mod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Group(tt.website, tt.authors, tt.mod); got != tt.want {
				t.Fatalf("Group() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroupPath(t *testing.T) {
	got := GroupPath("alice.test.mod")
	if !reflect.DeepEqual(got, []string{"alice", "test", "mod"}) {
		t.Fatalf("unexpected path %v", got)
	}
}
