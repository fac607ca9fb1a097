// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// collection, or the engine grows the interner before the operation that
// triggered it is retried.
const _MINFREENODES int = 20

// _DEFAULTMAXNODEINC bounds how many new slots a single Grow call adds to the
// interner, so that a pathological sizing mistake cannot balloon memory in
// one step.
const _DEFAULTMAXNODEINC uint64 = 1 << 20
