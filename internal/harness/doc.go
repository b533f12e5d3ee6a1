// Package harness runs alignment scenarios and checks their results.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: global_example
//	description: "AATGC against AGGC with identity scores"
//	config: ../configs/identity.yaml   # relative to the scenario file
//	max_paths: 1000                    # optional
//	assertions:
//	  - type: score
//	    score: 2.3
//	  - type: alignment_contains
//	    a: ATG_C
//	    b: A_GGC
//	  - type: alignment_set
//	    alignments:
//	      - {a: ATG_C, b: A_GGC}
//	  - type: alignment_count
//	    count: 1
//	  - type: path_count
//	    count: 1
//
// Instead of config, a scenario may carry the legacy text format inline
// under input.
//
// # Built-in Checks
//
// Besides its assertions, every run verifies that each alignment rescored
// from its strings (analysis.Rescore) reaches the reported best score, and
// that the run survives a write/read round trip through a fresh in-memory
// store.
//
// # Deterministic Testing
//
// Runs use fixed run ids (testutil.FixedIDGenerator) and the engine's
// deterministic ordering, so reports are byte-identical across runs and can
// be compared against golden files (RunWithGolden).
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/global_example.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
