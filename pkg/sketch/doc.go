// Package sketch exposes the public contracts shared by every resolution stage:
// the resolved Sketch value, the Source abstraction describing where a sketch
// came from, the Loader contract, and the error taxonomy callers match with
// errors.Is. Implementations live under internal/sketch so the decoding and
// directory walking details stay hidden from consumers.
package sketch
