package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerStepsEveryTaskOnce(t *testing.T) {
	s := NewScheduler()
	counts := [3]int{}
	for i := range counts {
		i := i
		s.Spawn(func(dt float64) bool {
			counts[i]++
			return false
		})
	}

	s.Step(1.0 / 60)
	s.Step(1.0 / 60)
	assert.Equal(t, [3]int{2, 2, 2}, counts)
	assert.Equal(t, 3, s.Pending())
}

func TestSchedulerDropsFinishedPreservingOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Spawn(func(dt float64) bool {
		order = append(order, "a")
		return false
	})
	s.Spawn(func(dt float64) bool {
		order = append(order, "b")
		return true // finishes after the first step
	})
	s.Spawn(func(dt float64) bool {
		order = append(order, "c")
		return false
	})

	s.Step(0.016)
	assert.Equal(t, 2, s.Pending())

	s.Step(0.016)
	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, order)
}

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(0.05, func() { fired++ })

	dt := 1.0 / 60
	for i := 0; i < 2; i++ { // 0.033s accumulated, not yet due
		s.Step(dt)
	}
	assert.Equal(t, 0, fired)

	s.Step(dt) // passes 0.05
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.Pending())

	s.Step(dt)
	assert.Equal(t, 1, fired)
}

func TestSchedulerSpawnDuringStepRunsNextTick(t *testing.T) {
	s := NewScheduler()
	spawnedRan := 0
	s.Spawn(func(dt float64) bool {
		s.Spawn(func(dt float64) bool {
			spawnedRan++
			return true
		})
		return true
	})

	s.Step(0.016)
	assert.Equal(t, 0, spawnedRan, "spawned task must wait for the next tick")
	assert.Equal(t, 1, s.Pending())

	s.Step(0.016)
	assert.Equal(t, 1, spawnedRan)
	assert.Equal(t, 0, s.Pending())
}
