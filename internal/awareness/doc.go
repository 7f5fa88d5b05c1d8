/*
Package awareness fuses perception reports into a bounded, decaying awareness
score per tracked target.

# Scores and bands

Each record holds a score in [0, 2]:

  - 0: untracked, removed by the next decay pass that observes it
  - (0, 1): suspicious, the reported position should not be trusted
  - [1, 2): detected, the last known position is trusted
  - 2: fully detected

# Reports

Every sensing channel funnels into Engine.Update, which raises the score to the
channel floor before adding the channel delta and clamps the result. A floor never
lowers a score that is already above it. When a report moves the score across a
band boundary the engine returns, and delivers to its Listener, exactly one Event:
the most severe band the new score sits in.

# Decay

Engine.Decay runs once per tick after all reports. Records sensed within the
configured grace delay are left untouched. Other records lose DecayRate per second
of frame time; a record whose score falls to zero produces EventFullyLost and is
removed once the whole pass has been evaluated.

The engine is not safe for concurrent use. It is owned by a single agent and
mutated only from that agent's tick.
*/
package awareness
