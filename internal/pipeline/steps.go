package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/volsreport/volsreport/internal/config"
	"github.com/volsreport/volsreport/internal/dataset"
	"github.com/volsreport/volsreport/internal/fonts"
	"github.com/volsreport/volsreport/internal/model"
	"github.com/volsreport/volsreport/internal/report"
	"golang.org/x/crypto/sha3"
)

// LoadStep reads the dataset named by the run's input path.
type LoadStep struct {
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new dataset loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, run *model.Run) error {
	rec, err := dataset.Load(run.InputPath)
	if err != nil {
		return err
	}
	run.Record = rec

	s.logger.Debug("dataset loaded",
		"input", run.InputPath,
		"as_of", rec.AsOf,
		"dismantled", len(rec.Dismantled2025),
		"key_branches", len(rec.KeyBranches),
		"rostelecom", len(rec.Rostelecom),
	)
	return nil
}

// RenderStep renders one document into memory and attaches it to the run.
type RenderStep struct {
	renderer report.Renderer
	path     string
	logger   *slog.Logger
}

// RenderStepOption configures a RenderStep.
type RenderStepOption func(*RenderStep)

// WithRenderLogger sets a custom logger for the render step.
func WithRenderLogger(logger *slog.Logger) RenderStepOption {
	return func(s *RenderStep) {
		s.logger = logger
	}
}

// NewRenderStep creates a step that renders with r. The document will be
// written to path by the write step.
func NewRenderStep(r report.Renderer, path string, opts ...RenderStepOption) *RenderStep {
	s := &RenderStep{
		renderer: r,
		path:     path,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name, e.g. "render-pdf".
func (s *RenderStep) Name() string {
	return "render-" + s.renderer.Name()
}

// Do executes the render step.
func (s *RenderStep) Do(_ context.Context, run *model.Run) error {
	if run.Record == nil {
		return ErrNoRecord
	}

	data, err := s.renderer.Render(run.Record)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", s.renderer.Name(), err)
	}
	run.AddArtifact(s.renderer.Name(), s.path, data)

	s.logger.Debug("document rendered",
		"kind", s.renderer.Name(),
		"path", s.path,
		"bytes", len(data),
	)
	return nil
}

// WriteStep writes every rendered document to disk.
type WriteStep struct {
	dir    string
	perm   os.FileMode
	logger *slog.Logger
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithWriteLogger sets a custom logger for the write step.
func WithWriteLogger(logger *slog.Logger) WriteStepOption {
	return func(s *WriteStep) {
		s.logger = logger
	}
}

// WithFileMode sets the permission bits of written documents.
func WithFileMode(perm os.FileMode) WriteStepOption {
	return func(s *WriteStep) {
		s.perm = perm
	}
}

// DefaultFileMode lets the documents be read by other users, since they
// are meant to be handed out.
const DefaultFileMode os.FileMode = 0644

// NewWriteStep creates a step that writes documents, creating dir first.
func NewWriteStep(dir string, opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{
		dir:    dir,
		perm:   DefaultFileMode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do executes the write step. Existing documents are overwritten.
// Each document is written to a temporary file and renamed into place, so
// a document on disk is always complete.
func (s *WriteStep) Do(_ context.Context, run *model.Run) error {
	if len(run.Artifacts) == 0 {
		return ErrNothingToWrite
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := range run.Artifacts {
		a := &run.Artifacts[i]
		if err := writeFile(a.Path, a.Data, s.perm); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
		a.Digest = Digest(a.Data)

		s.logger.Debug("document written",
			"kind", a.Kind,
			"path", a.Path,
			"bytes", a.Size,
			"sha3", a.Digest,
		)
	}
	run.Written = true
	return nil
}

// Digest returns the hex SHA3-256 of data.
func Digest(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeFile replaces path with data via a temporary file in the same directory.
func writeFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".volsreport-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }() //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// RunSaver stores a completed run.
type RunSaver interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// HistoryStep records the run in the history database.
type HistoryStep struct {
	saver  RunSaver
	logger *slog.Logger
}

// HistoryStepOption configures a HistoryStep.
type HistoryStepOption func(*HistoryStep)

// WithHistoryLogger sets a custom logger for the history step.
func WithHistoryLogger(logger *slog.Logger) HistoryStepOption {
	return func(s *HistoryStep) {
		s.logger = logger
	}
}

// NewHistoryStep creates a step that saves runs with saver.
func NewHistoryStep(saver RunSaver, opts ...HistoryStepOption) *HistoryStep {
	s := &HistoryStep{
		saver:  saver,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do executes the history step.
func (s *HistoryStep) Do(ctx context.Context, run *model.Run) error {
	id, err := s.saver.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	s.logger.Debug("run recorded", "id", id)
	return nil
}

// ContentOptions converts the configured wording into report options.
func ContentOptions(cfg *config.Config) report.Options {
	return report.Options{
		Organization:        cfg.Organization,
		DocumentConclusions: cfg.DocumentConclusions,
		SlideConclusions:    cfg.SlideConclusions,
	}
}

// DefaultPipelineConfig holds dependencies of the default pipeline that do
// not come from config.Config.
type DefaultPipelineConfig struct {
	// FontSet provides preloaded fonts; nil means they are located from
	// config.Config.FontDir when the PDF is rendered.
	FontSet *fonts.Set

	// Saver records the run. It is required when config.Config.History is set.
	Saver RunSaver
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineFontSet uses preloaded fonts for the PDF.
func WithPipelineFontSet(set *fonts.Set) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.FontSet = set
	}
}

// WithPipelineSaver sets where runs are recorded.
func WithPipelineSaver(saver RunSaver) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Saver = saver
	}
}

// Renderers returns the renderers enabled by cfg, PDF and PPTX first.
func Renderers(cfg *config.Config, set *fonts.Set) []report.Renderer {
	content := ContentOptions(cfg)

	pdfOpts := []report.PDFOption{report.WithFontDir(cfg.FontDir)}
	if set != nil {
		pdfOpts = append(pdfOpts, report.WithFontSet(set))
	}

	renderers := []report.Renderer{
		report.NewPDFRenderer(content, pdfOpts...),
		report.NewPPTXRenderer(content),
	}
	if cfg.XLSX {
		renderers = append(renderers, report.NewXLSXRenderer(content))
	}
	if cfg.Markdown {
		renderers = append(renderers, report.NewMarkdownRenderer(content))
	}
	return renderers
}

// Default creates the standard generation pipeline for cfg:
// load, one render step per enabled document, write, and history when
// enabled and a saver is provided.
//
// The first variadic parameter accepts pipeline options (WithLogger).
// The second accepts dependency options (WithPipelineSaver, etc).
func Default(cfg *config.Config, pipelineOpts []Option, defaultOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	dc := &DefaultPipelineConfig{}
	for _, opt := range defaultOpts {
		opt(dc)
	}

	p.AddStep(NewLoadStep(WithLoadLogger(p.logger)))
	for _, r := range Renderers(cfg, dc.FontSet) {
		p.AddStep(NewRenderStep(r, cfg.OutputPath(r.Ext()), WithRenderLogger(p.logger)))
	}
	p.AddStep(NewWriteStep(cfg.OutputDir, WithWriteLogger(p.logger)))

	if cfg.History && dc.Saver != nil {
		p.AddStep(NewHistoryStep(dc.Saver, WithHistoryLogger(p.logger)))
	}

	return p
}
