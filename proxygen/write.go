package proxygen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("proxygen")

// Status describes the generated file of a request relative to its sources.
type Status int

const (
	StatusCurrent Status = iota // file matches what would be generated
	StatusStale                 // file exists with different content
	StatusMissing               // file does not exist
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusStale:
		return "stale"
	case StatusMissing:
		return "missing"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result reports the outcome of one request.
type Result struct {
	Request Request
	Path    string
	Methods int
	Status  Status // before writing
	Written bool
}

// Options control GenerateAll.
type Options struct {
	// DryRun reports what would change without writing files.
	DryRun bool
	// Concurrency bounds the number of requests processed at once. Zero means
	// GOMAXPROCS.
	Concurrency int
}

// GenerateShell introspects, renders and, unless dryRun is set, writes the shell
// for one request. Files whose content is already current are left untouched.
func GenerateShell(req Request, dryRun bool) (Result, error) {
	res := Result{Request: req}

	model, code, err := render(req)
	if err != nil {
		return res, err
	}
	res.Path = model.Output
	res.Methods = len(model.Methods)

	res.Status, err = compare(model.Output, code)
	if err != nil {
		return res, err
	}
	if res.Status == StatusCurrent || dryRun {
		return res, nil
	}

	if err := os.WriteFile(model.Output, []byte(code), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", model.Output, err)
	}
	res.Written = true
	log.Infof("wrote %s (%d methods)", model.Output, res.Methods)
	return res, nil
}

func render(req Request) (*ShellModel, string, error) {
	model, err := Introspect(req)
	if err != nil {
		return nil, "", fmt.Errorf("introspecting %s.%s: %w", req.Package, req.Base, err)
	}
	code, err := Generate(model)
	if err != nil {
		return nil, "", fmt.Errorf("generating %s.%s: %w", req.Package, req.Base, err)
	}
	return model, code, nil
}

// GenerateAll runs GenerateShell for every request concurrently. Results are
// returned in request order; the first error cancels the remaining requests.
func GenerateAll(ctx context.Context, reqs []Request, opts Options) ([]Result, error) {
	outputs := make(map[string]int, len(reqs))
	for i, req := range reqs {
		output := req.Output
		if output == "" {
			output = OutputFile(req.Base)
		}
		key := req.Dir + "\x00" + req.Package + "\x00" + output
		if j, ok := outputs[key]; ok {
			return nil, fmt.Errorf("proxygen: %s.%s and %s.%s write the same file", reqs[j].Package, reqs[j].Base, req.Package, req.Base)
		}
		outputs[key] = i
	}

	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debugf("generating %s.%s", req.Package, req.Base)
			res, err := GenerateShell(req, opts.DryRun)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Check resolves the shell for req and reports the status of its file without
// writing anything.
func Check(req Request) (*ShellModel, Status, error) {
	model, code, err := render(req)
	if err != nil {
		return nil, 0, err
	}
	status, err := compare(model.Output, code)
	return model, status, err
}

func compare(path, code string) (Status, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return StatusMissing, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.Equal(existing, []byte(code)) {
		return StatusCurrent, nil
	}
	return StatusStale, nil
}
