package model

import "time"

// Artifact is one rendered output document held in memory until the
// pipeline writes it to disk.
type Artifact struct {
	// Kind identifies the renderer that produced the artifact ("pdf", "pptx", ...).
	Kind string `json:"kind"`

	// Path is the destination file path.
	Path string `json:"path"`

	// Data is the encoded document. It is not persisted in run history.
	Data []byte `json:"-"`

	// Size is len(Data), kept after Data is released.
	Size int64 `json:"size"`

	// Digest is the hex SHA3-256 of Data, filled in when the artifact is written.
	Digest string `json:"digest,omitempty"`
}

// Run carries the state of one generation pipeline run.
// Steps fill it in order: the record first, then artifacts, then the
// written flag.
type Run struct {
	// InputPath is the dataset file the run reads.
	InputPath string `json:"input_path"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Record is the loaded dataset; nil until the load step completes.
	Record *Record `json:"record,omitempty"`

	// Artifacts are the rendered documents in render order.
	Artifacts []Artifact `json:"artifacts"`

	// Written is true once every artifact is on disk.
	Written bool `json:"written"`

	// PerformedSteps tracks which pipeline steps completed.
	PerformedSteps []string `json:"performed_steps"`
}

// NewRun creates a Run for the given input file.
func NewRun(inputPath string) *Run {
	return &Run{
		InputPath: inputPath,
		StartedAt: time.Now(),
	}
}

// AddArtifact appends a rendered document to the run.
func (r *Run) AddArtifact(kind, path string, data []byte) {
	r.Artifacts = append(r.Artifacts, Artifact{
		Kind: kind,
		Path: path,
		Data: data,
		Size: int64(len(data)),
	})
}

// Artifact returns the artifact of the given kind, if rendered.
func (r *Run) Artifact(kind string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Kind == kind {
			return a, true
		}
	}
	return Artifact{}, false
}

// Paths returns the destination paths of all artifacts in render order.
func (r *Run) Paths() []string {
	paths := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		paths[i] = a.Path
	}
	return paths
}
