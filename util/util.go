package util

import (
	"math/rand"
	"sync"
	"time"
)

var R *rand.Rand
var lock *sync.Mutex

func init() {
	R = rand.New(rand.NewSource(time.Now().UnixNano()))
	lock = &sync.Mutex{}
}

// Reseed makes a simulation run reproducible.
func Reseed(seed int64) {
	lock.Lock()
	R = rand.New(rand.NewSource(seed))
	lock.Unlock()
}

func RandomIntIn(min, max int) int {
	lock.Lock()
	defer lock.Unlock()
	return R.Intn(max-min+1) + min
}

func RandomFloatIn(min, max float64) float64 {
	lock.Lock()
	defer lock.Unlock()
	return min + R.Float64()*(max-min)
}

func Shuffle(ints []int) {
	lock.Lock()
	defer lock.Unlock()
	R.Shuffle(len(ints), func(i, j int) {
		ints[i], ints[j] = ints[j], ints[i]
	})
}
