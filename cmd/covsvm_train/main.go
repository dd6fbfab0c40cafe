// Command covsvm_train learns an SVM covariance model from a manifest of category directories.
package main

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/covlearn"
	"github.com/hscells/covlearn/config"
)

var (
	name    = "covsvm_train"
	version = "15.Oct.2026"
)

type args struct {
	Gamma    float64 `arg:"positional,required" help:"gamma of the RBF kernel"`
	Manifest string  `arg:"positional,required" help:"file listing one category directory of covariances per line"`
	Config   string  `help:"properties file configuring the run"`
	Model    string  `help:"path to write the model to (default is model.txt)"`
	Report   string  `help:"path to write a JSON report of the run to"`
	Progress bool    `help:"show a progress bar while reading categories"`
	Verbose  bool    `arg:"-v" help:"print the stack of fatal errors"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", name, version)
}

func (args) Description() string {
	return `Train an SVM model from directories of covariance features, one category per directory.`
}

func main() {
	// Parse the command line arguments.
	var args args
	arg.MustParse(&args)
	os.Exit(run(args))
}

// run trains a model as configured by args and returns the exit status of the command.
func run(args args) int {
	c := config.Default()
	if len(args.Config) > 0 {
		var err error
		c, err = config.Load(args.Config)
		if err != nil {
			log.Println(err)
			return 1
		}
	}
	if len(args.Model) > 0 {
		c.ModelPath = args.Model
	}
	if args.Progress {
		c.Progress = true
	}

	learner, err := covlearn.NewLearner(c)
	if err != nil {
		log.Println(err)
		return 1
	}

	report, err := learner.Learn(args.Gamma, args.Manifest)
	if len(args.Report) > 0 {
		if werr := writeReport(args.Report, report); werr != nil {
			log.Println(werr)
		}
	}
	if err != nil {
		if args.Verbose {
			fmt.Fprintln(os.Stderr, stack(err))
		}
		return 1
	}
	return 0
}

// stack renders err with the stack of the panic it came from when there is one, and the
// stack of where it was wrapped otherwise.
func stack(err error) string {
	var stacked *errors.Error
	if stderrors.As(err, &stacked) {
		return stacked.ErrorStack()
	}
	return fmt.Sprintf("%+v", err)
}

func writeReport(path string, report covlearn.Report) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteJSON(f)
}
