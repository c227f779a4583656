// Package fortune is the deterministic core of the fortune seal: string
// hashing, seeded selection, profile fingerprints, reference-zone period
// bucketing and assembly of Fortune records.
//
// Everything here is a pure function of its inputs except the id and
// timestamp stamped on a freshly generated Fortune. For a fixed profile hash
// and period key the chosen template and the rendered text never change, so a
// caller that lost its history can regenerate the same words.
//
// Typical use:
//
//	cal := fortune.DefaultCalendar()
//	key, _ := cal.Key(fortune.Daily, clk.Now())
//	if f, ok := store.Get(fortune.Daily, key); ok {
//	    return f
//	}
//	f, err := engine.Generate(profile, fortune.Daily, key)
//	store.Put(fortune.Daily, key, f)
package fortune
