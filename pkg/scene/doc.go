// Package scene implements the reactive scene graph at the heart of
// planesketch: a collection of geometric entities (points, lines, conics)
// connected by directed dependency edges, with a relaxation resolver that
// recomputes every derived attribute from closed-form analytic geometry.
//
// # Model
//
// Entities form a closed sum type ([*Point], [*Line], [*Conic]) sharing
// common [Meta] (id, name, color, hidden flag, generic dependency list).
// Dependencies are materialized as explicit [Edge] values with an
// enumerated [EdgeKind], so both the resolver and cascade deletion can
// treat the graph uniformly.
//
// # Operations
//
// A [Scene] is an immutable value: Create, Update, and Delete each read
// the prior collection and return a new, fully relaxed one. This makes
// every mutation a whole-collection transformation with no aliasing
// hazards and no locking. The resolver never fails — unresolvable
// dependencies leave an entity unchanged for the pass, and degenerate
// numeric configurations mark the entity hidden instead of erroring.
//
// # Relaxation
//
// Resolution runs a fixed number of passes (default 3) over the whole
// collection. Observed dependency-chain depth (point → line →
// intersection, or point → polar → tangency point) never exceeds three,
// so fixed-depth relaxation is simpler and cheaper than topological
// ordering. Deeper chains under-resolve silently; callers that construct
// them can raise the pass count via [Scene.ResolveN].
package scene
