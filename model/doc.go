// Package model contains the in-memory representation of the simulator
// inputs and results: process records, per-CPU RAM budgets, the four
// priority queues produced by admission and the run report persisted after a
// simulation.
//
// Types in this package carry no scheduling behaviour; admission lives in
// service/admission and dispatch in service/scheduler.
package model
