// Package javawrap is the built-in sketch translator. It checks that braces,
// literals and comments are balanced, rewrites the color type and #RRGGBB
// literals, hoists imports, moves size() style calls into settings() and
// renders the result into a PApplet subclass with a main method.
//
// Sketches without top-level methods run once inside setup(). Sketches that
// declare methods have their PApplet callbacks made public.
package javawrap
