// Package metrics provides per-generation observers for a running board.
//
// Every metric implements the same four methods (Name, Observe, Value,
// Reset) and is fed the grid once per tick by the simulator:
//
//   - [Population]: live cells in the latest generation
//   - [Density]: mean live fraction
//   - [Churn]: mean births plus deaths per tick
//   - [History]: bounded population series for plots
//   - [CycleDetector]: still-life and oscillator detection
//
// Metrics are not safe for concurrent use.
package metrics
