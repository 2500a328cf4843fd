// Package lighting provides the day/night sky model that drives the sun.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// DefaultDayDuration is the length of one day/night cycle in seconds.
const DefaultDayDuration float32 = 256

// sunDistance places the sun effectively at infinity.
const sunDistance = 1e10

// SkyState is the day/night state carried from frame to frame by its owner.
type SkyState struct {
	IsDay      bool
	LastSwitch float32 // time of the last day/night flip
	DayLerp    float32 // 1 is full day, 0 is full night
	LastTime   float32
}

// SunData is what the terrain and sky shaders need about the sun.
type SunData struct {
	Position math.Vec3
	DayLerp  float32
}

// Direction returns the unit vector pointing towards the sun.
func (s SunData) Direction() math.Vec3 {
	return s.Position.Normalize()
}

// Vec4 packs the sun position and day factor for a vec4 uniform.
func (s SunData) Vec4() math.Vec4 {
	return math.Vec4{s.Position.X, s.Position.Y, s.Position.Z, s.DayLerp}
}

// NewSkyState starts in full daylight at the given time.
func NewSkyState(time float32) SkyState {
	return SkyState{
		IsDay:    true,
		DayLerp:  1,
		LastTime: time,
	}
}

// SunPosition returns the sun position at a time. The sun circles the YZ
// plane once per day, rising from -Z.
func SunPosition(time, dayDuration float32) math.Vec3 {
	angle := time * 2 * math32.Pi / dayDuration
	return math.Vec3{
		Y: sunDistance * math32.Sin(angle),
		Z: -sunDistance * math32.Cos(angle),
	}
}

// Advance moves the sky to time. Day and night flip while the daytime
// fraction is inside (0.7, 0.8), at most once per half day. DayLerp then
// eases towards the new state over a tenth of a day.
func Advance(state SkyState, time, dayDuration float32) (SkyState, SunData) {
	if dayDuration <= 0 {
		dayDuration = DefaultDayDuration
	}

	daytime := math32.Mod(time, dayDuration) / dayDuration
	if daytime < 0 {
		daytime += 1
	}
	if daytime > 0.7 && daytime < 0.8 && (time-state.LastSwitch)/dayDuration > 0.5 {
		state.IsDay = !state.IsDay
		state.LastSwitch = time
	}

	transition := 0.1 * dayDuration
	dt := time - state.LastTime
	state.LastTime = time

	if state.IsDay && state.DayLerp < 1 {
		state.DayLerp = min(state.DayLerp+dt/transition, 1)
	} else if !state.IsDay && state.DayLerp > 0 {
		state.DayLerp = max(state.DayLerp-dt/transition, 0)
	}

	return state, SunData{
		Position: SunPosition(time, dayDuration),
		DayLerp:  state.DayLerp,
	}
}
