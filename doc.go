// Package schedsim simulates admission control and multi-queue dispatch on
// a machine with two CPUs.
//
// Processes are admitted in input order against two RAM budgets: CPU-1
// reserves 512 units, CPU-2 receives the rest of a 2048-unit machine.
// Priority 0 runs on CPU-1 first-come-first-served; on CPU-2 priority 1 runs
// shortest-job-first and priorities 2 and 3 run round-robin with quanta 8
// and 16. Every admission and dispatch decision is emitted as a trace event.
//
// End-users typically interact with the simulator via the Service façade:
//
//	srv, _ := schedsim.New(schedsim.WithConfig(cfg))
//	run, _ := srv.Runtime().Run(ctx, "input.txt")
//	fmt.Println(run.Digest)
//
// The schedsim command wraps the same runtime.
package schedsim
