// Package fusion contains the pure reductions at the heart of sessionmesh:
// merging N independent user contexts into one fused view and resolving a set
// of participant roles to an AI interaction mode. Nothing here touches store
// state; every function is deterministic and side-effect free.
package fusion
