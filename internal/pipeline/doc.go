// Package pipeline runs report generation as a sequence of steps.
//
// A run loads the dataset, renders every document into memory, writes the
// documents, and optionally records the run in the history database. Each
// stage is a Step that receives the shared *model.Run.
//
// Design decision: Rendering and writing are separate steps. Every
// renderer runs before the write step, so a failure while rendering (an
// unknown risk tier, a missing font) leaves no partial set of documents on
// disk. The pipeline stops at the first failing step.
package pipeline
