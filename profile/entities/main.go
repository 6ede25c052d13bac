// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" ./entities cpu.pprof

package main

import (
	"github.com/TheBitDrifter/stockroom"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type health struct {
	Current, Max int
}

func main() {
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(50, 100000)
	p.Stop()
}

func run(rounds, numEntities int) {
	for range rounds {
		world := stockroom.Factory.NewBoxWorld()

		ids := make([]stockroom.EntityID, 0, numEntities)
		for i := 0; i < numEntities; i++ {
			id, err := world.Add(stockroom.NewBoxEntity(
				stockroom.BoxOf(position{X: float64(i)}),
				stockroom.BoxOf(velocity{X: 1}),
				stockroom.BoxOf(health{Current: 10, Max: 10}),
			))
			if err != nil {
				panic(err)
			}
			ids = append(ids, id)
		}

		// Component churn
		for _, id := range ids {
			e := world.MustGet(id)
			stockroom.RemoveBox[health](e)
			e.Add(stockroom.BoxOf(health{Current: 5, Max: 10}))
		}

		// Remove half the table
		for i, id := range ids {
			if i%2 == 0 {
				world.Remove(id)
			}
		}
	}
}
