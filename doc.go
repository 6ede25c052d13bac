/*
Package stockroom provides an in-memory entity-component store with cached
predicate-based queries.

Stockroom groups heterogeneous typed values ("components") into records
("entities") and holds many entities in a collection ("world"). Instead of
re-scanning every entity on each query, callers register boolean predicates
with the world; the world maintains a cached list of matching entity ids
for each predicate and keeps it approximately in sync as entities come and go.

Core Concepts:

  - Storage: a container holding exactly one component value, addressable by a
    stable per-type identifier. Two realizations ship with the package: Box
    (open set, identified by reflect.Type) and Tagged (closed set, dense
    integer identifiers fixed by a UnionSchema).
  - Entity: a mapping from component identifier to storage; at most one
    storage per identifier.
  - World: the authoritative table of entities keyed by a generated EntityID,
    plus every registered predicate index. The world owns entity lifetime.
  - Cursor: an iterator over one predicate index that resolves cached ids
    against the live table, lazily retiring entries for removed entities.

Basic Usage:

	// Create a world over open-set storage
	world := stockroom.Factory.NewBoxWorld()

	// Register a predicate before adding entities
	predID := world.RegisterPredicate(stockroom.PredAnd(
		stockroom.HasBoxOf[Position](),
		stockroom.HasBoxOf[Velocity](),
	))

	// Add entities built from boxed components
	world.Add(stockroom.NewBoxEntity(
		stockroom.BoxOf(Position{X: 1}),
		stockroom.BoxOf(Velocity{X: 2}),
	))

	// Query and process the matches
	cursor, _ := world.IterPred(predID)
	for cursor.Next() {
		pos, _ := stockroom.GetBox[Position](cursor.Entity())
		vel, _ := stockroom.GetBox[Velocity](cursor.Entity())
		pos.X += vel.X
	}

Removal is cheap on purpose: removing an entity touches only the entity table,
and predicate indices reconcile lazily. A cursor that visits a removed entity
tombstones the stale entry in place, and the next Add sweeps tombstones out of
every index before appending. The cost of removal is deferred rather than paid
per registered predicate.

Stockroom is single-threaded by design. Any mutation of a world requires
exclusive access; Lock, Unlock, and the Enqueue operations let callers defer
mutations issued while a cursor is draining.
*/
package stockroom
