package process

import (
	"fmt"

	"github.com/srodi/spamtop/pkg/logging"
	"github.com/srodi/spamtop/pkg/types"
)

// Entry is one process as seen by the lister: its PID and raw stat line.
type Entry struct {
	PID  int
	Stat string
}

// Result counts what a reconciliation pass did.
type Result struct {
	Added   int
	Updated int
	Evicted int
	Skipped int
}

// Reconciler applies fresh listings to a persistent process table.
type Reconciler struct {
	pageSize uint64
	log      logging.Logger
}

// NewReconciler uses the host page size when pageSize is zero.
func NewReconciler(pageSize uint64, log logging.Logger) *Reconciler {
	if pageSize == 0 {
		pageSize = PageSize()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Reconciler{pageSize: pageSize, log: log}
}

// Reconcile upserts every well-formed entry and evicts every PID that is
// not in the listing. Existing records are overwritten in place so a
// pointer taken from the table keeps tracking the same PID. A malformed
// entry is skipped: a record it already has keeps its previous values.
func (r *Reconciler) Reconcile(table types.ProcessTable, listing []Entry) Result {
	var res Result
	live := make(map[int]struct{}, len(listing))
	for _, entry := range listing {
		live[entry.PID] = struct{}{}
	}

	for _, entry := range listing {
		rec, err := ParseStat(entry.Stat, r.pageSize)
		if err == nil && rec.PID != entry.PID {
			err = fmt.Errorf("%w: line is for pid %d", ErrMalformedStat, rec.PID)
		}
		if err != nil {
			res.Skipped++
			r.log.Warn("skipping process", logging.Int("pid", entry.PID), logging.Err(err))
			continue
		}

		if existing, ok := table[entry.PID]; ok {
			*existing = rec
			res.Updated++
			continue
		}
		table[entry.PID] = &rec
		res.Added++
	}

	for pid := range table {
		if _, ok := live[pid]; !ok {
			delete(table, pid)
			res.Evicted++
		}
	}
	return res
}
