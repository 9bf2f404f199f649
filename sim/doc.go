// Package sim is a Monte-Carlo detector-response simulator for liquid
// noble-gas detectors: it forward-simulates the ionization and
// scintillation quanta produced by energy deposits by composing stochastic
// transformation stages over a shared parameter set.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - params.go: the validated parameter store every stage binds from
//   - generator.go: broadcast-aware random-variate samplers (tensor.go
//     carries the shape/broadcast algebra, rng.go the seed partitioning)
//   - stage.go / stages.go: the Stage interface and the physics stages
//   - pipeline.go: stage composition, edge listing, the ERmTI reference
//     pipeline
//   - interp.go: reference-table interpolators for tabulated response maps
//
// # Reproducibility
//
// Every sampler takes an explicit *Source. NewSource(NewSimulationKey(s))
// gives bit-reproducible runs for a fixed seed s; TimeKey() opts into
// wall-clock seeding for throwaway runs.
package sim
