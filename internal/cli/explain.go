package cli

// This file implements the "explain" command. It runs a small startup
// pipeline that fails at a chosen stage and prints the resulting chain.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"

	"errchain/pkg/errchain"
)

// DemoKind is the error kind of the demo pipeline.
type DemoKind string

const (
	KindStartup DemoKind = "Startup"
	KindLoad    DemoKind = "Load"
	KindParse   DemoKind = "Parse"
)

// Stages where the demo pipeline can fail.
const (
	FailDisk  = "disk"
	FailParse = "parse"
	FailLoad  = "load"
	FailNone  = "none"
)

// Output formats supported by explain.
const (
	OutputText  = "text"
	OutputTree  = "tree"
	OutputDebug = "debug"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

// Report is the structured form of a chain printed by explain.
type Report struct {
	Error string       `json:"error"`
	Depth int          `json:"depth"`
	Nodes []ReportNode `json:"nodes"`
}

// ReportNode describes one chain node in a Report.
type ReportNode struct {
	Kind     string `json:"kind"`
	Site     string `json:"site"`
	Function string `json:"function,omitempty"`
	Source   string `json:"source,omitempty"`
}

// NewReport builds a Report from err. Non-chain errors yield a single node.
func NewReport(err error) Report {
	r := Report{Error: err.Error()}
	var n errchain.Node
	if !errors.As(err, &n) {
		r.Depth = 1
		r.Nodes = []ReportNode{{Kind: err.Error(), Site: errchain.CallSite{}.String()}}
		return r
	}
	for ; n != nil; n = n.Next() {
		node := ReportNode{
			Kind:     n.KindString(),
			Site:     n.Site().String(),
			Function: n.Site().Function,
		}
		if src := n.Source(); src != nil {
			node.Source = src.Error()
		}
		r.Nodes = append(r.Nodes, node)
		r.Depth++
	}
	return r
}

// ExplainManager runs the demo pipeline with injected dependencies.
type ExplainManager struct {
	logger  *zap.Logger
	printer *Printer
}

// NewExplainManager creates an ExplainManager with the given dependencies.
func NewExplainManager(logger *zap.Logger, printer *Printer) *ExplainManager {
	return &ExplainManager{logger: logger, printer: printer}
}

// NewExplainCmd returns the explain command.
func NewExplainCmd(logger *zap.Logger) *cobra.Command {
	var failAt string
	var output string
	var sources int

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Run a demo pipeline and print its error chain",
		Long: `Run a small startup pipeline (Startup -> Load -> Parse) that fails at
the chosen stage, then print the error chain in the chosen format.

The pipeline failing is the expected outcome, so explain exits 0 once the
chain is printed. A non-zero exit means explain itself failed, for example
on an invalid flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := NewExplainManager(logger, &Printer{Out: cmd.OutOrStdout()})
			return mgr.Explain(cmd.Context(), failAt, output, sources)
		},
	}

	cmd.Flags().StringVar(&failAt, "fail-at", FailDisk, "Stage that fails: disk, parse, load or none")
	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "Output format: text, tree, debug, yaml or json")
	cmd.Flags().IntVar(&sources, "sources", 1, "Number of config sources loaded in parallel")

	return cmd
}

// Explain runs the pipeline and prints the outcome.
func (m *ExplainManager) Explain(ctx context.Context, failAt, output string, sources int) error {
	if err := validateExplainFlags(failAt, output, sources); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p := newPipeline(failAt, sources)
	_, runErr := errchain.Go(ctx, p.startup).Await(ctx)
	if runErr == nil {
		m.printer.Success("startup ok")
		return nil
	}
	logStructuredError(m.logger, runErr, "demo pipeline failed")

	if err := m.print(runErr, output); err != nil {
		return errchain.Context(err, StepRender)
	}
	return nil
}

func (m *ExplainManager) print(err error, output string) error {
	switch output {
	case OutputText:
		m.printer.Printf("%v\n", err)
	case OutputDebug:
		m.printer.Printf("%s\n", errchain.DebugString(err))
	case OutputTree:
		m.printer.Section("Error chain")
		var items pterm.LeveledList
		for level, node := range NewReport(err).Nodes {
			items = append(items, pterm.LeveledListItem{
				Level: level,
				Text:  fmt.Sprintf("%s %s", Cyan("["+node.Site+"]"), node.Kind),
			})
		}
		return m.printer.Tree(items)
	case OutputYAML:
		data, merr := yaml.Marshal(NewReport(err))
		if merr != nil {
			return merr
		}
		m.printer.Printf("%s", data)
	case OutputJSON:
		data, merr := json.MarshalIndent(NewReport(err), "", "  ")
		if merr != nil {
			return merr
		}
		m.printer.Printf("%s\n", data)
	}
	return nil
}

func validateExplainFlags(failAt, output string, sources int) error {
	switch failAt {
	case FailDisk, FailParse, FailLoad, FailNone:
	default:
		return errchain.Context(fmt.Errorf("--fail-at %q: want disk, parse, load or none", failAt), StepInvalidFlag)
	}
	switch output {
	case OutputText, OutputTree, OutputDebug, OutputYAML, OutputJSON:
	default:
		return errchain.Context(fmt.Errorf("--output %q: want text, tree, debug, yaml or json", output), StepInvalidFlag)
	}
	if sources < 1 {
		return errchain.Context(fmt.Errorf("--sources %d: want at least 1", sources), StepInvalidFlag)
	}
	return nil
}

// pipeline is the demo startup sequence. Each stage is instrumented once,
// so every failure crossing it gains exactly one node.
type pipeline struct {
	failAt  string
	sources int

	startup func(context.Context) (struct{}, error)
	load    func(context.Context) (map[string]int, error)
	parse   func(string) (map[string]int, error)
}

func newPipeline(failAt string, sources int) *pipeline {
	p := &pipeline{failAt: failAt, sources: sources}
	p.startup = errchain.Async(KindStartup, p.runStartup)
	p.load = errchain.Async(KindLoad, p.runLoad)
	p.parse = errchain.Func1(KindParse, p.runParse)
	return p
}

func (p *pipeline) runStartup(ctx context.Context) (struct{}, error) {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.sources; i++ {
		g.Go(func() error {
			_, err := p.load(gctx)
			return err
		})
	}
	return struct{}{}, g.Wait()
}

func (p *pipeline) runLoad(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.failAt == FailLoad {
		return nil, &fs.PathError{Op: "open", Path: "/etc/app/config", Err: fs.ErrNotExist}
	}
	return p.parse("workers=4\nqueue=64\n")
}

func (p *pipeline) runParse(text string) (map[string]int, error) {
	if p.failAt == FailDisk {
		return nil, errchain.From(DemoKind("disk full"))
	}
	if p.failAt == FailParse {
		text = strings.Replace(text, "64", "sixty-four", 1)
	}
	out := make(map[string]int)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		key, value, _ := strings.Cut(line, "=")
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, nil
}
