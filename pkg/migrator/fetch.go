package migrator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/source"
)

// fetchWorkers bounds how many GetDDL calls run concurrently while
// resolving a schema.Database's object DDL, per spec.md §5's
// "parallelize fetching, serialize planning" allowance.
const fetchWorkers = 8

type ddlKey struct {
	kind schema.Kind
	name string
}

// resolved holds one database's object DDL, keyed by kind and name,
// plus any per-object fetch errors.
type resolved struct {
	texts map[ddlKey]string
	errs  map[ddlKey]error
}

func (r resolved) get(kind schema.Kind, name string) (string, error) {
	if err, ok := r.errs[ddlKey{kind, name}]; ok {
		return "", err
	}
	return r.texts[ddlKey{kind, name}], nil
}

// resolveDDL fetches every object's DDL in src and dest concurrently
// (bounded by fetchWorkers), preferring a schema.Object's inline DDL
// field when already populated and falling back to ddlSrc.GetDDL
// otherwise. A fetch failure for one object is recorded against that
// object's key rather than aborting the whole resolution, matching the
// EmissionSkip handling spec.md §4.5 requires of the assembler.
func resolveDDL(ctx context.Context, ddlSrc source.DDLSource, src, dest *schema.Database) (srcResolved, destResolved resolved) {
	srcResolved = resolved{texts: map[ddlKey]string{}, errs: map[ddlKey]error{}}
	destResolved = resolved{texts: map[ddlKey]string{}, errs: map[ddlKey]error{}}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchWorkers)
	var mu sync.Mutex

	schedule := func(db *schema.Database, out *resolved) {
		if db == nil {
			return
		}
		for kind, objects := range db.Objects {
			for _, name := range objects.Names() {
				key := ddlKey{kind: kind, name: name}
				obj := objects[name]

				if obj.DDL != "" {
					mu.Lock()
					out.texts[key] = obj.DDL
					mu.Unlock()
					continue
				}
				if ddlSrc == nil {
					continue
				}

				g.Go(func() error {
					text, err := ddlSrc.GetDDL(gctx, key.kind, key.name)
					mu.Lock()
					if err != nil {
						out.errs[key] = err
					} else {
						out.texts[key] = text
					}
					mu.Unlock()
					return nil
				})
			}
		}
	}

	schedule(src, &srcResolved)
	schedule(dest, &destResolved)

	_ = g.Wait()
	return srcResolved, destResolved
}
