package state

import (
	"testing"
	"time"
)

func TestPlaybackAdvance(t *testing.T) {
	p := NewPlaybackState(10)
	p.Play()
	time.Sleep(20 * time.Millisecond)
	p.Advance()
	if p.CurrentTime <= 0 {
		t.Errorf("CurrentTime = %v, want > 0 after a tick", p.CurrentTime)
	}
	if !p.Playing {
		t.Error("a mid-replay tick must not pause the clock")
	}

	p.Pause()
	before := p.CurrentTime
	p.Advance()
	if p.CurrentTime != before {
		t.Errorf("CurrentTime = %v, want %v (paused clocks do not move)", p.CurrentTime, before)
	}
}

func TestPlaybackStopsAtHorizon(t *testing.T) {
	p := NewPlaybackState(10)
	p.SetSpeed(16)
	p.Play()
	// Backdate the tick so the next advance overshoots the horizon.
	p.lastTick = time.Now().Add(-time.Second)
	p.Advance()
	if p.CurrentTime != 10 || p.Playing {
		t.Errorf("CurrentTime = %v, Playing = %v, want clamped to 10 and paused", p.CurrentTime, p.Playing)
	}
}

func TestTogglePlayRewindsAtEnd(t *testing.T) {
	p := NewPlaybackState(10)
	p.SetTime(10)
	p.TogglePlay()
	if !p.Playing || p.CurrentTime != 0 {
		t.Errorf("Playing = %v, CurrentTime = %v, want playing from 0", p.Playing, p.CurrentTime)
	}
	p.TogglePlay()
	if p.Playing {
		t.Error("the second toggle should pause")
	}
}

func TestSetTimeClamps(t *testing.T) {
	p := NewPlaybackState(10)
	p.SetTime(-5)
	if p.CurrentTime != 0 {
		t.Errorf("CurrentTime = %v, want 0", p.CurrentTime)
	}
	p.SetTime(42)
	if p.CurrentTime != 10 {
		t.Errorf("CurrentTime = %v, want 10", p.CurrentTime)
	}
}

func TestStep(t *testing.T) {
	p := NewPlaybackState(200)
	p.Play()
	p.Step(1)
	if p.Playing {
		t.Error("stepping should pause playback")
	}
	if p.CurrentTime != 2 {
		t.Errorf("CurrentTime = %v, want 2 (1%% of the horizon)", p.CurrentTime)
	}
	p.Step(-1)
	if p.CurrentTime != 0 {
		t.Errorf("CurrentTime = %v, want 0 after stepping back", p.CurrentTime)
	}

	short := NewPlaybackState(1)
	short.Step(1)
	if short.CurrentTime != 0.1 {
		t.Errorf("CurrentTime = %v, want the 0.1 floor", short.CurrentTime)
	}
	short.Step(-1)
	short.Step(-1)
	if short.CurrentTime != 0 {
		t.Errorf("CurrentTime = %v, want clamped at 0", short.CurrentTime)
	}
}

func TestSetSpeedClamps(t *testing.T) {
	p := NewPlaybackState(10)
	p.SetSpeed(0.01)
	if p.Speed != 0.1 {
		t.Errorf("Speed = %v, want 0.1", p.Speed)
	}
	p.SetSpeed(1000)
	if p.Speed != 16 {
		t.Errorf("Speed = %v, want 16", p.Speed)
	}
	p.SetSpeed(4)
	if p.Speed != 4 {
		t.Errorf("Speed = %v, want 4", p.Speed)
	}
}

func TestRescale(t *testing.T) {
	p := NewPlaybackState(10)
	p.SetSpeed(8)
	p.SetTime(6)
	p.Play()
	p.Rescale(25)
	if p.Horizon != 25 || p.CurrentTime != 0 || p.Playing {
		t.Errorf("after Rescale: %+v, want horizon 25, rewound and stopped", p)
	}
	if p.Speed != 8 {
		t.Errorf("Speed = %v, want 8 preserved across Rescale", p.Speed)
	}
}

func TestProgress(t *testing.T) {
	p := NewPlaybackState(8)
	p.SetTime(2)
	if p.Progress() != 0.25 {
		t.Errorf("Progress = %v, want 0.25", p.Progress())
	}
	if NewPlaybackState(0).Progress() != 0 {
		t.Error("an empty horizon should report zero progress")
	}
}
