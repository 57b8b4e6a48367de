package portfolio

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-folio/internal/config"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same sample.
type fixedRand float32

func (f fixedRand) Float32() float32 { return float32(f) }

func newTestPortfolio(t *testing.T, mutate func(*config.Config)) *Portfolio {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := New(cfg, WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	return p
}

func names(objects []game_object.GameObject) []string {
	out := make([]string, len(objects))
	for i, obj := range objects {
		out[i] = obj.Name()
	}
	return out
}

func TestNewInsertionOrder(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 2 })

	assert.Equal(t,
		[]string{"star_0", "star_1", "torus", "point_light_helper", "grid", "avatar", "moon"},
		names(p.Objects()),
	)
	lights := p.Lights()
	require.Len(t, lights, 2)
	assert.Equal(t, light.LightTypePoint, lights[0].Type())
	assert.Equal(t, light.LightTypeAmbient, lights[1].Type())
	assert.Equal(t, [3]float32{5, 5, 5}, lights[0].Position())
	assert.Same(t, p.PointLight(), p.Objects()[3].Light(), "the helper follows the point light")
}

func TestNewWithoutHelpers(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) {
		c.Stars.Count = 0
		c.Scene.ShowHelpers = false
	})
	assert.Equal(t, []string{"torus", "avatar", "moon"}, names(p.Objects()))
}

func TestNewPlacesObjects(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 0 })

	x, y, z := p.Moon().Position()
	assert.Equal(t, [3]float32{-10, 0, 30}, [3]float32{x, y, z})
	x, y, z = p.Avatar().Position()
	assert.Equal(t, [3]float32{0, 0, 0}, [3]float32{x, y, z})

	assert.Equal(t, material.MaterialTypeStandard, p.Torus().Material().Type())
	assert.Equal(t, common.HexColor(0xff6347), p.Torus().Material().Color())
	assert.Equal(t, material.MaterialTypeBasic, p.Avatar().Material().Type())
	assert.Equal(t, material.MaterialTypeStandard, p.Moon().Material().Type())
	assert.Nil(t, p.Background(), "textures are assigned by Bootstrap")

	pos := p.Camera().Position()
	assert.InDelta(t, 30, pos[2], 1e-4)
	assert.InDelta(t, common.DegToRad(75), p.Camera().Fov(), 1e-6)
	assert.InDelta(t, 1280.0/720.0, p.Camera().Aspect(), 1e-6)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Stars.Radius = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestStarsWithinSpread(t *testing.T) {
	p := newTestPortfolio(t, nil)
	stars := p.Stars()
	require.Len(t, stars, 200)

	models := map[any]bool{}
	for _, star := range stars {
		x, y, z := star.Position()
		for _, v := range []float32{x, y, z} {
			assert.Greater(t, v, float32(-50))
			assert.LessOrEqual(t, v, float32(50))
		}
		models[star.Model()] = true
		assert.Equal(t, material.MaterialTypeStandard, star.Material().Type())
		assert.Equal(t, common.White, star.Material().Color())
	}
	assert.Len(t, models, 200, "every star allocates its own geometry")
}

func TestStarSpreadBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Stars.Count = 1

	p, err := New(cfg, WithRand(fixedRand(0)))
	require.NoError(t, err)
	x, y, z := p.Stars()[0].Position()
	assert.Equal(t, [3]float32{50, 50, 50}, [3]float32{x, y, z}, "the upper bound is inclusive")

	p, err = New(cfg, WithRand(fixedRand(0.99999)))
	require.NoError(t, err)
	x, _, _ = p.Stars()[0].Position()
	assert.Greater(t, x, float32(-50), "the lower bound is exclusive")
}

func TestSharedStarGeometry(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) {
		c.Stars.Count = 5
		c.Stars.SharedGeometry = true
		c.Stars.BasicMaterial = true
	})
	stars := p.Stars()
	for _, star := range stars[1:] {
		assert.Same(t, stars[0].Model(), star.Model())
		assert.Same(t, stars[0].Material(), star.Material())
	}
	assert.Equal(t, material.MaterialTypeBasic, stars[0].Material().Type())
	assert.NotSame(t, stars[0].BindGroupProvider(), stars[1].BindGroupProvider(), "each star keeps its own transform")
}

func TestAddStarAppends(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 1 })
	star := p.AddStar()

	objects := p.Objects()
	assert.Same(t, star, objects[len(objects)-1])
	assert.Equal(t, "star_1", star.Name())
	assert.Len(t, p.Stars(), 2)
}

func TestMoveCamera(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 0 })

	p.MoveCamera(-1000)
	p.MoveCamera(-1000)

	pos := p.Camera().Position()
	assert.InDelta(t, 0.2, pos[0], 1e-5)
	assert.InDelta(t, 0.2, pos[1], 1e-5)
	assert.InDelta(t, 100, pos[2], 1e-3)

	rx, ry, rz := p.Moon().Rotation()
	assert.InDelta(t, 0.1, rx, 1e-6)
	assert.InDelta(t, 0.15, ry, 1e-6)
	assert.InDelta(t, 0.1, rz, 1e-6)

	rx, ry, rz = p.Avatar().Rotation()
	assert.Zero(t, rx)
	assert.InDelta(t, 0.02, ry, 1e-6)
	assert.InDelta(t, 0.02, rz, 1e-6)

	p.MoveCamera(0)
	pos = p.Camera().Position()
	assert.Equal(t, [3]float32{0, 0, 0}, pos, "the position depends only on the offset")
}

func TestAnimate(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 0 })

	for range 3 {
		p.Animate()
	}
	rx, ry, rz := p.Torus().Rotation()
	assert.InDelta(t, 0.03, rx, 1e-6)
	assert.InDelta(t, 0.015, ry, 1e-6)
	assert.InDelta(t, 0.03, rz, 1e-6)

	pos := p.Camera().Position()
	assert.InDelta(t, 0, pos[0], 1e-3)
	assert.InDelta(t, 30, pos[2], 1e-3, "idle controls leave the camera in place")

	rx, _, _ = p.Moon().Rotation()
	assert.Zero(t, rx, "frames do not rotate the moon")
}

func TestScrollWhileFramesRun(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 0 })

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				p.Animate()
			}
		}
	}()

	lost := 0
	for i := range 2000 {
		offset := float32(-100)
		if i%2 == 1 {
			offset = -1100
		}
		p.MoveCamera(offset)
		if z := p.Camera().Position()[2]; math32.Abs(z-offset*-0.1) > 0.01 {
			lost++
		}
	}
	close(stop)
	wg.Wait()

	assert.Zero(t, lost, "a frame must never overwrite a newer scroll position")
}

func TestViewAfterScrollingBackToTop(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 0 })
	cam := p.Camera()

	p.MoveCamera(-1000)
	p.Animate()
	cam.Update()
	view := cam.ViewMatrix()
	origin := common.TransformPoint(view[:], [3]float32{})
	assert.InDelta(t, -100, origin[2], 1e-2, "the camera faces the orbit target")

	p.MoveCamera(0)
	p.Animate()
	cam.Update()
	view = cam.ViewMatrix()

	ahead := common.TransformPoint(view[:], [3]float32{0, 0, -10})
	assert.InDelta(t, -10, ahead[2], 1e-4, "a camera on its target looks down -Z")
	mx, my, mz := p.Moon().Position()
	moon := [3]float32{mx, my, mz}
	projected := common.TransformPoint(view[:], moon)
	for i := range 3 {
		assert.InDelta(t, moon[i], projected[i], 1e-4, "the scene is still in view")
	}
}

func TestRunBeforeBootstrap(t *testing.T) {
	p := newTestPortfolio(t, func(c *config.Config) { c.Stars.Count = 0 })
	assert.ErrorIs(t, p.Run(), ErrNotBootstrapped)
	p.Quit()
	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
}
