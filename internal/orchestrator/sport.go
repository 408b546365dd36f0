package orchestrator

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/store"
)

// SelectSport switches the selection to sport/conference and loads its teams and constraints.
// The previous sport's schedule and violations are dropped immediately; responses still in
// flight for it are discarded when they land.
func (o *Orchestrator) SelectSport(ctx context.Context, sport, conference string) error {
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return ErrNoSport
	}

	o.mu.Lock()
	o.store.Update(func(st *store.State) bool {
		st.Epoch++
		st.Sport = sport
		st.Conference = conference
		st.Loaded = false
		st.Teams = []teams.Team{}
		st.Catalog = reconcile.Snapshot{}
		st.Schedule = schedules.Schedule{}
		st.HasSchedule = false
		return true
	})
	t, _ := o.startLocked(opSelectSport, PhaseLoading)
	o.mu.Unlock()

	var (
		teamList []teams.Team
		catalog  []constraints.Constraint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ts, err := o.remote.ListTeams(gctx, sport, conference)
		if err != nil {
			return &OperationError{Message: MsgLoadTeams, Err: err}
		}
		teamList = ts
		return nil
	})
	g.Go(func() error {
		cs, err := o.reconciler.Catalog(gctx, sport)
		if err != nil {
			return &OperationError{Message: MsgLoadConstraints, Err: err}
		}
		catalog = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		message := MsgLoadTeams
		if opErr, ok := AsOperationError(err); ok {
			message, err = opErr.Message, opErr.Err
		}
		return o.fail(ctx, t, message, err)
	}

	if _, ok := o.commit(t, func(st *store.State) {
		st.Teams = append([]teams.Team{}, teamList...)
		st.Catalog.Constraints = append([]constraints.Constraint{}, catalog...)
		st.Loaded = true
	}); !ok {
		return ErrSuperseded
	}
	o.finish(t)

	logging.Info(logging.FromContext(ctx, o.logger), "sport loaded",
		slog.String(logging.FieldSport, sport),
		slog.Int(logging.FieldCount, len(teamList)),
	)
	return nil
}
