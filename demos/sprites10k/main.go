// sprites10k reconciles 10,000 batch instances that bounce around the
// screen, rebuilding the whole list every tick. A stress test for list
// reconciliation and the instanced batch renderer.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/phanxgames/grove"
	"github.com/phanxgames/grove/scene2d"
)

const (
	screenW = 1280
	screenH = 720
	size    = 16
)

type mover struct {
	id        int
	x, y      float64
	dx, dy    float64
	rotSpeed  float64
	rot       float64
	color     grove.Color
	phase     float64
	alphaRate float64
}

func main() {
	count := flag.Int("n", 10_000, "number of instances")
	flag.Parse()

	scene := scene2d.NewScene(grove.WorldConfig{})
	scene.ClearColor = grove.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}

	movers := make([]*mover, *count)
	data := make([]any, *count)
	for i := range movers {
		movers[i] = &mover{
			id:        i,
			x:         rand.Float64() * screenW,
			y:         rand.Float64() * screenH,
			dx:        (rand.Float64() - 0.5) * 4,
			dy:        (rand.Float64() - 0.5) * 4,
			rotSpeed:  (rand.Float64() - 0.5) * 0.08,
			phase:     rand.Float64() * math.Pi * 2,
			alphaRate: 0.5 + rand.Float64()*2,
			color: grove.Color{
				R: 0.5 + rand.Float64()*0.5,
				G: 0.5 + rand.Float64()*0.5,
				B: 0.5 + rand.Float64()*0.5,
				A: 1,
			},
		}
		data[i] = movers[i]
	}

	template := &grove.Template{
		Key:    func(item any, _ int, _ []any) string { return strconv.Itoa(item.(*mover).id) },
		Facade: scene2d.InstanceType,
		Props: grove.Props{
			"x":        grove.Accessor(func(item any, _ int, _ []any) any { return item.(*mover).x }),
			"y":        grove.Accessor(func(item any, _ int, _ []any) any { return item.(*mover).y }),
			"rotation": grove.Accessor(func(item any, _ int, _ []any) any { return item.(*mover).rot }),
			"alpha": grove.Accessor(func(item any, _ int, _ []any) any {
				m := item.(*mover)
				return 0.55 + 0.45*math.Sin(m.phase)
			}),
			"color":  grove.Accessor(func(item any, _ int, _ []any) any { return item.(*mover).color }),
			"width":  size,
			"height": size,
		},
	}

	tick := func() {
		for _, m := range movers {
			m.x += m.dx
			m.y += m.dy
			if m.x < 0 || m.x > screenW-size {
				m.dx = -m.dx
			}
			if m.y < 0 || m.y > screenH-size {
				m.dy = -m.dy
			}
			m.rot += m.rotSpeed
			m.phase += m.alphaRate / 60
		}
		err := scene.Update(&grove.Descriptor{
			Key:      "movers",
			Facade:   scene2d.BatchType,
			Data:     data,
			Template: template,
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	tick()

	if err := scene2d.Run(scene, scene2d.RunConfig{
		Title:  "sprites10k",
		Width:  screenW,
		Height: screenH,
		OnTick: tick,
	}); err != nil {
		log.Fatal(err)
	}
}
