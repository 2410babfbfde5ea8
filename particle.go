package flowfield

import "math/rand/v2"

// trailCap bounds each particle's recent-position history.
const trailCap = 8

// Particle holds per-particle simulation state. Positions and velocities
// are in field-space pixels; Life counts remaining simulation ticks.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	// Mag is the flow magnitude sampled at the particle's position during
	// the most recent tick, cached for magnitude-based coloring.
	Mag float64
	// Trail is the particle's recent positions, oldest first, capped at
	// trailCap entries.
	Trail []Vec2
}

// ParticleSystem owns a fixed-size collection of particles advected by a
// flow sampler. All methods are single-goroutine; the widget drives the
// system from the game loop.
type ParticleSystem struct {
	particles []Particle
	bounds    Rect
	maxLife   int
}

// NewParticleSystem creates a system of count particles with the given
// lifetime (in ticks) spawned at random positions within bounds.
func NewParticleSystem(count, life int, bounds Rect) *ParticleSystem {
	s := &ParticleSystem{}
	s.Reset(count, life, bounds)
	return s
}

// Reset discards and reallocates the entire particle collection. Initial
// life is uniformly random in [0, life] so the population's respawns are
// staggered rather than synchronized.
func (s *ParticleSystem) Reset(count, life int, bounds Rect) {
	if count < 0 {
		count = 0
	}
	if life < 1 {
		life = 1
	}
	s.bounds = bounds
	s.maxLife = life
	s.particles = make([]Particle, count)
	for i := range s.particles {
		p := &s.particles[i]
		p.X = bounds.X + rand.Float64()*bounds.Width
		p.Y = bounds.Y + rand.Float64()*bounds.Height
		p.Life = rand.IntN(life + 1)
		p.MaxLife = life
	}
}

// Len returns the number of particles.
func (s *ParticleSystem) Len() int {
	return len(s.particles)
}

// Particles returns the live particle slice for rendering. The returned
// slice MUST NOT be mutated or retained across a Reset.
func (s *ParticleSystem) Particles() []Particle {
	return s.particles
}

// Bounds returns the spawn/containment rectangle.
func (s *ParticleSystem) Bounds() Rect {
	return s.bounds
}

// MaxLife returns the lifetime assigned at respawn.
func (s *ParticleSystem) MaxLife() int {
	return s.maxLife
}

// SetMaxLife updates the lifetime used for future respawns and the MaxLife
// reference on live particles. Current positions and remaining life are
// left untouched; the new value takes full effect as particles respawn.
func (s *ParticleSystem) SetMaxLife(life int) {
	if life < 1 {
		life = 1
	}
	s.maxLife = life
	for i := range s.particles {
		s.particles[i].MaxLife = life
	}
}

// SetBounds updates the containment rectangle without respawning anything.
// Particles outside the new bounds respawn on their next tick.
func (s *ParticleSystem) SetBounds(bounds Rect) {
	s.bounds = bounds
}

// ClearTrails empties every particle's trail history. Called by the widget
// when trailing is toggled off.
func (s *ParticleSystem) ClearTrails() {
	for i := range s.particles {
		s.particles[i].Trail = s.particles[i].Trail[:0]
	}
}

// Tick runs substeps full update passes. Each pass advects every particle:
// velocity is the sampled flow scaled by strength, the previous position is
// appended to the trail when trailing is enabled, position is integrated,
// and life is decremented. A particle whose life expires or whose position
// leaves the bounds respawns in place.
func (s *ParticleSystem) Tick(sampler Sampler, strength float64, substeps int, trailing bool) {
	for step := 0; step < substeps; step++ {
		for i := range s.particles {
			p := &s.particles[i]

			dx, dy, mag := sampler.Sample(p.X, p.Y)
			p.VX = dx * strength
			p.VY = dy * strength
			p.Mag = mag

			if trailing {
				if len(p.Trail) >= trailCap {
					copy(p.Trail, p.Trail[1:])
					p.Trail = p.Trail[:trailCap-1]
				}
				p.Trail = append(p.Trail, Vec2{X: p.X, Y: p.Y})
			}

			p.X += p.VX
			p.Y += p.VY
			p.Life--

			if p.Life <= 0 || !s.bounds.Contains(p.X, p.Y) {
				s.respawn(p)
			}
		}
	}
}

// respawn resets a particle in its slot: new random position within bounds,
// zero velocity, full life, empty trail. Trail continuity is intentionally
// not preserved across a respawn.
func (s *ParticleSystem) respawn(p *Particle) {
	p.X = s.bounds.X + rand.Float64()*s.bounds.Width
	p.Y = s.bounds.Y + rand.Float64()*s.bounds.Height
	p.VX = 0
	p.VY = 0
	p.Mag = 0
	p.Life = s.maxLife
	p.Trail = p.Trail[:0]
}
