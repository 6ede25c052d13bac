// Profiling:
// go build ./profile/pred
// go tool pprof -http=":8000" ./pred cpu.pprof

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

func main() {
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(10, 1000, 100000)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	schema := stockroom.Factory.NewUnionSchema()
	pos := stockroom.RegisterMember[position](schema)
	vel := stockroom.RegisterMember[velocity](schema)

	for range rounds {
		world := stockroom.Factory.NewTaggedWorld()
		predID := world.RegisterPredicate(stockroom.HasAllOf(pos, vel))

		for i := 0; i < numEntities; i++ {
			e := stockroom.NewTaggedEntity(pos.Wrap(position{X: float64(i)}))
			if i%2 == 0 {
				e.Add(vel.Wrap(velocity{X: 1}))
			}
			if _, err := world.Add(e); err != nil {
				panic(err)
			}
		}

		for range iters {
			cursor, _ := world.IterPred(predID)
			for cursor.Next() {
				p, _ := pos.GetFromEntity(cursor.Entity())
				v, _ := vel.GetFromEntity(cursor.Entity())
				p.X += v.X
				p.Y += v.Y
			}
		}
	}
}
