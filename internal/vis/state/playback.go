package state

import "time"

// PlaybackState is the replay clock. CurrentTime runs in schedule
// seconds from zero to Horizon.
type PlaybackState struct {
	CurrentTime float64
	Horizon     float64 // end of the schedule being replayed
	Speed       float64 // schedule seconds per wall second
	Playing     bool
	lastTick    time.Time
}

// NewPlaybackState creates a stopped clock for the given horizon.
func NewPlaybackState(horizon float64) *PlaybackState {
	return &PlaybackState{Horizon: horizon, Speed: 1}
}

// TogglePlay starts or stops the clock. Starting at the end rewinds
// first.
func (p *PlaybackState) TogglePlay() {
	if p.Playing {
		p.Pause()
		return
	}
	if p.CurrentTime >= p.Horizon {
		p.CurrentTime = 0
	}
	p.Play()
}

// Play starts the clock.
func (p *PlaybackState) Play() {
	p.Playing = true
	p.lastTick = time.Now()
}

// Pause stops the clock in place.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to time zero and stops.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the clock by the wall time elapsed since the last
// tick, scaled by Speed. The clock pauses itself at the horizon.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.CurrentTime += now.Sub(p.lastTick).Seconds() * p.Speed
	p.lastTick = now

	if p.CurrentTime >= p.Horizon {
		p.CurrentTime = p.Horizon
		p.Playing = false
	}
}

// SetTime seeks to t, clamped into [0, Horizon].
func (p *PlaybackState) SetTime(t float64) {
	switch {
	case t < 0:
		t = 0
	case t > p.Horizon:
		t = p.Horizon
	}
	p.CurrentTime = t
}

// Step pauses and nudges the clock one scrub step in the given
// direction: 1% of the horizon, at least a tenth of a second.
func (p *PlaybackState) Step(dir int) {
	p.Pause()
	step := p.Horizon / 100
	if step < 0.1 {
		step = 0.1
	}
	p.SetTime(p.CurrentTime + float64(dir)*step)
}

// SetSpeed clamps the speed multiplier to a usable range.
func (p *PlaybackState) SetSpeed(speed float64) {
	switch {
	case speed < 0.1:
		speed = 0.1
	case speed > 16:
		speed = 16
	}
	p.Speed = speed
}

// Rescale moves the clock onto a new schedule: fresh horizon, rewound
// and stopped. The speed setting survives.
func (p *PlaybackState) Rescale(horizon float64) {
	p.Horizon = horizon
	p.CurrentTime = 0
	p.Playing = false
}

// Progress returns replay completion in [0, 1].
func (p *PlaybackState) Progress() float64 {
	if p.Horizon <= 0 {
		return 0
	}
	return p.CurrentTime / p.Horizon
}
