package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/deppfellow/seedance-go/client"
	"github.com/deppfellow/seedance-go/generation"
	"github.com/deppfellow/seedance-go/internal/config"
	"github.com/deppfellow/seedance-go/internal/lib/utils"
	"github.com/deppfellow/seedance-go/internal/logger"
	"github.com/deppfellow/seedance-go/internal/server"
	"github.com/deppfellow/seedance-go/validation"
)

// maxConcurrentLookups bounds parallel requests made by get.
const maxConcurrentLookups = 4

type validationOutput struct {
	Valid      bool                  `json:"valid"`
	Request    *generation.Request   `json:"request,omitempty"`
	Violations validation.Violations `json:"violations,omitempty"`
}

func (a *app) validate(args []string) error {
	fs := a.flagSet("validate")
	file := fs.String("f", "-", "request JSON file, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.readRequest(*file)
	if err != nil {
		return err
	}
	if !res.Valid() {
		return res.Err()
	}

	return utils.PrintJSON(a.stdout, validationOutput{Valid: true, Request: &res.Request})
}

// readRequest validates a request file. Violations are printed before
// they are returned.
func (a *app) readRequest(path string) (generation.Result, error) {
	raw, err := utils.ReadInput(path, a.stdin)
	if err != nil {
		return generation.Result{}, err
	}

	res := generation.ValidateJSON(raw)
	if !res.Valid() {
		if err := utils.PrintJSON(a.stdout, validationOutput{Violations: res.Violations}); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := a.flagSet("create")
	file := fs.String("f", "-", "request JSON file, - for stdin")
	wait := fs.Bool("wait", false, "poll until the task finishes")
	timeout := fs.Duration("timeout", 30*time.Minute, "how long -wait polls before giving up")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.readRequest(*file)
	if err != nil {
		return err
	}
	if !res.Valid() {
		return res.Err()
	}

	c, log, err := a.client()
	if err != nil {
		return err
	}
	ctx = log.WithContext(ctx)

	created, err := c.Submit(ctx, res.Request)
	if err != nil {
		return err
	}
	if !*wait {
		return utils.PrintJSON(a.stdout, created)
	}

	log.Info().Str("task_id", created.ID).Msg("task submitted, waiting")
	return a.waitFor(ctx, c, created.ID, *timeout)
}

func (a *app) get(ctx context.Context, args []string) error {
	fs := a.flagSet("get")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) == 0 {
		return usageError("get: at least one task id is required")
	}

	c, log, err := a.client()
	if err != nil {
		return err
	}

	tasks := make([]*client.Task, len(ids))
	g, gctx := errgroup.WithContext(log.WithContext(ctx))
	g.SetLimit(maxConcurrentLookups)

	for i, id := range ids {
		g.Go(func() error {
			task, err := c.GetTask(gctx, id)
			if err != nil {
				return err
			}
			tasks[i] = task
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(tasks) == 1 {
		return utils.PrintJSON(a.stdout, tasks[0])
	}
	return utils.PrintJSON(a.stdout, tasks)
}

func (a *app) wait(ctx context.Context, args []string) error {
	fs := a.flagSet("wait")
	timeout := fs.Duration("timeout", 30*time.Minute, "how long to poll before giving up")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("wait: exactly one task id is required")
	}

	c, log, err := a.client()
	if err != nil {
		return err
	}
	return a.waitFor(log.WithContext(ctx), c, fs.Arg(0), *timeout)
}

func (a *app) waitFor(ctx context.Context, c *client.Client, id string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	task, err := c.WaitForTask(ctx, id)
	if task != nil {
		if printErr := utils.PrintJSON(a.stdout, task); printErr != nil && err == nil {
			err = printErr
		}
	}
	return err
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := a.flagSet("cancel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("cancel: exactly one task id is required")
	}

	c, log, err := a.client()
	if err != nil {
		return err
	}

	id := fs.Arg(0)
	if err := c.CancelTask(log.WithContext(ctx), id); err != nil {
		return err
	}
	log.Info().Str("task_id", id).Msg("task cancelled")
	return nil
}

func (a *app) models(ctx context.Context, args []string) error {
	fs := a.flagSet("models")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageError("models: takes no arguments")
	}

	c, log, err := a.client()
	if err != nil {
		return err
	}

	models, err := c.ListModels(log.WithContext(ctx))
	if err != nil {
		return err
	}
	return utils.PrintJSON(a.stdout, models)
}

// client loads configuration and builds a generation client logging to
// stderr.
func (a *app) client() (*client.Client, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.NewWithWriter(cfg, a.stderr)
	c, err := server.NewClient(cfg, &log)
	if err != nil {
		return nil, log, err
	}
	return c, log, nil
}
