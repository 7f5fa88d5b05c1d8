// Package sim is a small deterministic world for exercising agents end to
// end: straight-line movers, wandering targets that make noise, and a fixed
// step loop that ticks every agent in ID order.
package sim
