// Package geom implements the closed-form analytic geometry used by the
// scene resolver: conic coefficient derivation and inversion, conic
// classification, line and point constructions, intersections, projections,
// and pole/polar duality.
//
// # Design
//
// Every function in this package is stateless, deterministic, and total:
// numerically degenerate inputs (parallel lines, negative discriminants,
// zero-length normals, coincident points) produce an explicit "no solution"
// or identity result instead of an error or a panic. Callers decide how to
// degrade — typically by hiding an entity or leaving it unchanged for one
// relaxation pass.
//
// # Conventions
//
// Lines are stored in implicit form ax + by + c = 0. Conics are stored
// either as standard parameters (center, semi-axes, rotation) or as the
// six general-equation coefficients of
//
//	Ax² + Bxy + Cy² + Dx + Ey + F = 0
//
// Comparisons against zero use the package tolerance [Epsilon].
package geom
