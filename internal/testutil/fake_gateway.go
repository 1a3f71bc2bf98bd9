package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/ohshaan/Leave-botanv/internal/domain"
)

// FakeGateway is an in-memory erp.Gateway for tests. Zero-value fields
// answer with empty data; Err* fields inject failures per operation.
type FakeGateway struct {
	Profile   domain.EmployeeProfile
	Types     []domain.LeaveType
	Records   []domain.LeaveRecord
	Summaries map[int]domain.LeaveSummary

	ErrProfile   error
	ErrTypes     error
	ErrRecords   error
	ErrSummaries error

	mu           sync.Mutex
	SummaryCalls []int
}

func (f *FakeGateway) GetEmployeeDetails(ctx context.Context, empID string) (*domain.EmployeeProfile, error) {
	if f.ErrProfile != nil {
		return nil, f.ErrProfile
	}
	p := f.Profile
	return &p, nil
}

func (f *FakeGateway) GetLeaveTypes(ctx context.Context, empID string) ([]domain.LeaveType, error) {
	if f.ErrTypes != nil {
		return nil, f.ErrTypes
	}
	return f.Types, nil
}

func (f *FakeGateway) GetLeaveApplications(ctx context.Context, empID string) ([]domain.LeaveRecord, error) {
	if f.ErrRecords != nil {
		return nil, f.ErrRecords
	}
	return f.Records, nil
}

func (f *FakeGateway) GetLeaveSummary(ctx context.Context, empID string, lpdID int, fromDate, toDate string) (*domain.LeaveSummary, error) {
	f.mu.Lock()
	f.SummaryCalls = append(f.SummaryCalls, lpdID)
	f.mu.Unlock()
	if f.ErrSummaries != nil {
		return nil, f.ErrSummaries
	}
	s, ok := f.Summaries[lpdID]
	if !ok {
		return nil, errors.New("no leave summary found for given parameters")
	}
	return &s, nil
}
