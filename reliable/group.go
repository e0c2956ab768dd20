package reliable

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type RunFn func(context.Context) error

// Group runs a set of RunFn under a shared context. The first error cancels
// the context of all other members.
type Group struct {
	group *errgroup.Group
	ctx   context.Context
}

func NewGroup(ctx context.Context) *Group {
	group, ctx := errgroup.WithContext(ctx)
	return &Group{
		group: group,
		ctx:   ctx,
	}
}

func (g *Group) Go(fn RunFn) {
	g.group.Go(func() error {
		return fn(g.ctx)
	})
}

func (g *Group) Wait() error {
	return g.group.Wait()
}
