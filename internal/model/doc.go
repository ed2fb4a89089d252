// Package model defines the data structures shared across volsreport.
//
// This package contains the following main types:
//   - Record: the input dataset about unauthorized fiber-optic attachments
//   - Risk: the three-tier risk classification of a key branch
//   - Label: a value that may arrive as a JSON string or number
//   - Run: the state carried through one generation pipeline run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The dataset loader, the renderers and the pipeline all need
// these types, so centralizing them prevents import cycles.
package model
