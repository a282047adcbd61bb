package cache

import (
	"testing"

	"golang.org/x/exp/slices"
)

func TestLessVersion(t *testing.T) {
	gameVersions := []string{"23w13a", "1.20", "1.19.4", "1.20.1", "1.9", "1.20-rc1"}
	slices.SortFunc(gameVersions, lessVersion)

	expected := []string{"1.9", "1.19.4", "1.20-rc1", "1.20", "1.20.1", "23w13a"}
	if !slices.Equal(gameVersions, expected) {
		t.Errorf("expected %v, got %v", expected, gameVersions)
	}
}
