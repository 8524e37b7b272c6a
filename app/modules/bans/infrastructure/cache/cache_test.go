package cache

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestExistenceCacheEmpty(t *testing.T) {
	c := NewExistenceCache()

	assert.False(t, c.ContainsPlayer("steve123"))
	assert.False(t, c.ContainsAdmin("adminx"))

	players, admins := c.Sizes()
	assert.Zero(t, players)
	assert.Zero(t, admins)
}

func TestExistenceCacheCaseInsensitive(t *testing.T) {
	c := NewExistenceCache()
	c.Load([]string{"Steve123", "OtherGuy"}, []string{"AdminX"})

	tests := []struct {
		name  string
		check func() bool
	}{
		{name: "exact player", check: func() bool { return c.ContainsPlayer("steve123") }},
		{name: "upper player", check: func() bool { return c.ContainsPlayer("STEVE123") }},
		{name: "mixed player", check: func() bool { return c.ContainsPlayer("StEvE123") }},
		{name: "exact admin", check: func() bool { return c.ContainsAdmin("adminx") }},
		{name: "mixed admin", check: func() bool { return c.ContainsAdmin("AdminX") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check())
		})
	}

	assert.False(t, c.ContainsPlayer("ghost"))
	assert.False(t, c.ContainsAdmin("ghost"))
}

func TestExistenceCacheReloadIsAdditive(t *testing.T) {
	c := NewExistenceCache()

	c.Load([]string{"p1", "p2"}, []string{"a1"})
	c.Load([]string{"p2", "p3"}, []string{})

	players, admins := c.Sizes()
	assert.Equal(t, 3, players)
	assert.Equal(t, 1, admins)

	// Entries from the first load survive a reload that does not repeat them.
	assert.True(t, c.ContainsPlayer("p1"))
	assert.True(t, c.ContainsAdmin("a1"))
}

func TestExistenceCacheConcurrentReadsSeeWholeSnapshots(t *testing.T) {
	c := NewExistenceCache()

	seed := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		seed = append(seed, gofakeit.Username())
	}
	c.Load(seed, seed)

	// Both identifiers are published in a single Load, so a reader that
	// observes the player must also observe the admin.
	const newPlayer = "freshplayer"
	const newAdmin = "freshadmin"

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if c.ContainsPlayer(newPlayer) {
					assert.True(t, c.ContainsAdmin(newAdmin), "reader saw a torn snapshot")
				}
			}
		}()
	}

	c.Load([]string{newPlayer}, []string{newAdmin})
	close(stop)
	wg.Wait()

	assert.True(t, c.ContainsPlayer(newPlayer))
	assert.True(t, c.ContainsAdmin(newAdmin))
}
