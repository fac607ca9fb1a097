// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package tbdd implements a tagged hybrid decision diagram: a data structure
that fuses the classical BDD minimization rule (skip a variable whose
cofactors are equal) and the ZDD rule (skip a variable whose high cofactor
is False) into a single shared graph, by tagging every edge with the
variable at which ZDD-style skipping begins. This gives compact
representations of both general Boolean functions and sparse sets of
assignments in one structure, with efficient operations between them.

Basics

An Engine owns a fixed-size domain of variables numbered [0, DomainSize),
created with New. Every operation takes and returns an Edge: a compact
reference into the engine's shared, hash-consed node table, carrying its
own tag. Edges are comparable with ==; two edges denote the same
(assignment set, domain) pair if and only if they are equal as raw values.

Domains

Most operations take an explicit dom parameter: an edge to a chain of
marker nodes, one per variable, built once by New and returned by
Engine.Domain. Operations that only care about a subset of variables work
over a chain of just those variables, built with Engine.ProjectDomain (for
example RelNext's source-only domain).

Concurrency

Recursive kernels (And, Or, Ite, Exists, RelNext) fork their two (or four)
cofactor branches across a bounded worker pool and join before
constructing the result node, following a classic fork-join work-stealing
discipline. See internal/task for the pool implementation and refstack.go
for how live intermediates are kept reachable across a spawn/sync window.

Garbage collection

Nodes are immutable once interned and are only ever reclaimed by Engine.GC,
a mark-and-sweep collection that traces the engine's own pinned literals
and domain chain, every edge registered with Engine.Protect, and the
engine's active recursions. GC runs automatically whenever the node
interner is full; callers may also force one directly.
*/
package tbdd
