package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/erp"
	"github.com/ohshaan/Leave-botanv/internal/llm"
)

// Manager owns the one active session and rebuilds it wholesale whenever
// the bound employee identity changes. There is no incremental merge: a
// new id discards everything, including the transcript.
type Manager struct {
	gateway erp.Gateway
	helpDoc string
	now     func() time.Time

	current *State
}

// NewManager creates a Manager over the given ERP gateway. helpDoc is the
// already-loaded procedure document (or its placeholder).
func NewManager(gateway erp.Gateway, helpDoc string) *Manager {
	return &Manager{
		gateway: gateway,
		helpDoc: helpDoc,
		now:     time.Now,
	}
}

// Current returns the active session, or nil before the first Bind.
func (m *Manager) Current() *State {
	return m.current
}

// Bind associates the session with an employee id. The first sighting
// triggers bootstrap; a changed id triggers discard and re-bootstrap; the
// same id is a no-op returning the existing state.
func (m *Manager) Bind(ctx context.Context, empID string) (*State, error) {
	if m.current != nil && m.current.EmpID == empID {
		return m.current, nil
	}
	st, err := m.bootstrap(ctx, empID)
	if err != nil {
		return nil, err
	}
	m.current = st
	return st, nil
}

// bootstrap fetches the profile, catalog, and history sequentially, then
// one balance summary per catalog entry concurrently. Summaries dominate
// bootstrap latency and are order-independent, keyed by Lpd_ID_N. Any
// individual fetch failure degrades to an empty value or an error-marked
// summary; bootstrap itself only fails on a cancelled context.
func (m *Manager) bootstrap(ctx context.Context, empID string) (*State, error) {
	st := &State{
		ID:        uuid.NewString(),
		EmpID:     empID,
		Summaries: map[int]domain.LeaveSummary{},
		HelpDoc:   m.helpDoc,
	}

	if profile, err := m.gateway.GetEmployeeDetails(ctx, empID); err == nil {
		st.Profile = *profile
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if types, err := m.gateway.GetLeaveTypes(ctx, empID); err == nil {
		st.LeaveTypes = types
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if records, err := m.gateway.GetLeaveApplications(ctx, empID); err == nil {
		st.History = records
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	today := m.now().Format("2006-01-02")
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, lt := range st.LeaveTypes {
		g.Go(func() error {
			sum, err := m.gateway.GetLeaveSummary(gctx, empID, lt.LpdID, today, today)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				st.Summaries[lt.LpdID] = domain.LeaveSummary{Err: err.Error()}
				return nil
			}
			st.Summaries[lt.LpdID] = *sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	st.Transcript = []llm.Message{{Role: llm.RoleSystem, Content: buildSystemPrompt(st)}}
	return st, nil
}
