package render

import "time"

// CycleRate is how many colour cycle steps happen per second.
const CycleRate = 60

// CyclePeriods holds, per RGBA channel, the number of steps the channel takes
// to climb from 0 to 1. Channel i grows by 1/CyclePeriods[i] per step and
// wraps back to 0 on reaching 1.
var CyclePeriods = [4]int64{100, 200, 400, 800}

// CycleColor returns the cycling colour after elapsed time. It depends only
// on elapsed, not on how many frames were drawn.
func CycleColor(elapsed time.Duration) [4]float32 {
	steps := int64(elapsed / (time.Second / CycleRate))
	var c [4]float32
	for i, p := range CyclePeriods {
		c[i] = float32(steps%p) / float32(p)
	}
	return c
}
