package dataset

import (
	"io"
	"log"
	"os"

	"github.com/hscells/covlearn/category"
	"github.com/hscells/covlearn/feature"
	"github.com/hscells/covlearn/sample"
	"gopkg.in/cheggaaa/pb.v1"
)

// Builder gathers the samples of every category into a training problem. Unreadable
// directories and files are logged and skipped.
type Builder struct {
	Enumerator sample.Enumerator
	Parser     feature.Parser
	Logger     *log.Logger
	// Progress, when not nil, receives a progress bar over the categories.
	Progress io.Writer
}

// BuilderOption configures a Builder.
type BuilderOption func(b *Builder)

// WithEnumerator sets how category directories are listed.
func WithEnumerator(e sample.Enumerator) BuilderOption {
	return func(b *Builder) {
		b.Enumerator = e
	}
}

// WithParser sets how feature files are parsed.
func WithParser(p feature.Parser) BuilderOption {
	return func(b *Builder) {
		b.Parser = p
	}
}

// WithLogger sets the logger skipped categories and samples are reported to.
func WithLogger(l *log.Logger) BuilderOption {
	return func(b *Builder) {
		b.Logger = l
	}
}

// WithProgress draws a progress bar to w while building.
func WithProgress(w io.Writer) BuilderOption {
	return func(b *Builder) {
		b.Progress = w
	}
}

// NewBuilder creates a builder reading from the local file system.
func NewBuilder(options ...BuilderOption) Builder {
	b := Builder{
		Enumerator: sample.DirectoryEnumerator{},
		Parser:     feature.FileParser{},
		Logger:     log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

// Build gathers the samples of the categories and packs them into a problem.
func (b Builder) Build(categories []category.Category) (Problem, error) {
	return Pack(b.Assemble(categories))
}

// Assemble reads every category in order and returns what each one produced. Labels are
// assigned by position in categories, so a category that produced nothing still takes a label.
func (b Builder) Assemble(categories []category.Category) []Group {
	var bar *pb.ProgressBar
	if b.Progress != nil {
		bar = pb.New(len(categories))
		bar.Output = b.Progress
		bar.Start()
		defer bar.Finish()
	}

	return Fold(categories, func(c category.Category) Group {
		g := b.collect(c)
		if bar != nil {
			bar.Increment()
		}
		return g
	})
}

func (b Builder) collect(c category.Category) Group {
	g := Group{Category: c}

	paths, err := b.Enumerator.List(c.Dir)
	if err != nil {
		b.logf("skipping category %d: %v", c.Label, err)
		g.Err = err
		return g
	}

	for _, path := range paths {
		v, err := b.Parser.Parse(path)
		if err != nil {
			b.logf("skipping sample: %v", err)
			g.Skipped = append(g.Skipped, path)
			continue
		}
		g.Samples = append(g.Samples, Sample{Label: c.Label, Source: path, Vector: v})
	}
	b.logf("category %d (%s): %d samples, %d skipped", c.Label, c.Dir, len(g.Samples), len(g.Skipped))
	return g
}

func (b Builder) logf(format string, v ...interface{}) {
	if b.Logger != nil {
		b.Logger.Printf(format, v...)
	}
}
