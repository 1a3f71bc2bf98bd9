// Package erp is the read-only client for the HR ERP's leave-management
// REST endpoints.
package erp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ohshaan/Leave-botanv/internal/domain"
)

// Gateway exposes the four ERP read operations the assistant depends on.
// Every failure surfaces as a wrapped sentinel error, never a panic.
type Gateway interface {
	// GetEmployeeDetails fetches one employee's profile.
	GetEmployeeDetails(ctx context.Context, empID string) (*domain.EmployeeProfile, error)

	// GetLeaveTypes fetches the employee's leave-type catalog, ordered as
	// served, unique by Lpd_ID_N.
	GetLeaveTypes(ctx context.Context, empID string) ([]domain.LeaveType, error)

	// GetLeaveApplications fetches the leave history, pre-filtered
	// server-side to exclude deleted drafts (status 0) and status 6.
	GetLeaveApplications(ctx context.Context, empID string) ([]domain.LeaveRecord, error)

	// GetLeaveSummary fetches the balance summary for one leave type over
	// a date range. Dates are "2006-01-02" strings.
	GetLeaveSummary(ctx context.Context, empID string, lpdID int, fromDate, toDate string) (*domain.LeaveSummary, error)
}

type client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Gateway that talks to the ERP REST API.
func NewClient(cfg Config, observer Observer) Gateway {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *client) GetEmployeeDetails(ctx context.Context, empID string) (*domain.EmployeeProfile, error) {
	q := url.Values{"strEmp_ID_N": {empID}}
	body, err := c.call(ctx, "get_employee_details", http.MethodPost,
		"/api/EmployeeMasterApi/HrmGetEmployeeDetails/", q)
	if err != nil {
		return nil, err
	}

	var list []domain.EmployeeProfile
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no employee found with that ID", ErrNotFound)
	}
	return &list[0], nil
}

func (c *client) GetLeaveTypes(ctx context.Context, empID string) ([]domain.LeaveType, error) {
	q := url.Values{
		"Emp_ID_N": {empID},
		"Cgm_ID_N": {"1"},
	}
	body, err := c.call(ctx, "get_leave_types", http.MethodGet,
		"/api/LeaveApplicationApi/FillLeaveType", q)
	if err != nil {
		return nil, err
	}

	var list []domain.LeaveType
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	return list, nil
}

func (c *client) GetLeaveApplications(ctx context.Context, empID string) ([]domain.LeaveRecord, error) {
	filter := fmt.Sprintf("A.Emp_ID_N=%s AND A.Ela_Status_N NOT IN (0,6) ORDER BY Ela_RefferNo_V", empID)
	q := url.Values{"StrFilter": {filter}}
	body, err := c.call(ctx, "get_leave_applications", http.MethodPost,
		"/api/LeaveApplicationApi/HrmGetLeaveApplicationDetails", q)
	if err != nil {
		return nil, err
	}

	var list []domain.LeaveRecord
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	return list, nil
}

func (c *client) GetLeaveSummary(ctx context.Context, empID string, lpdID int, fromDate, toDate string) (*domain.LeaveSummary, error) {
	strSQL := fmt.Sprintf("%s,%d,'%s','%s',0,0,1,0",
		empID, lpdID, toAPIDate(fromDate), toAPIDate(toDate))
	q := url.Values{"StrSql": {strSQL}}
	body, err := c.call(ctx, "get_leave_summary", http.MethodPost,
		"/api/LeaveApplicationApi", q)
	if err != nil {
		return nil, err
	}

	var list []domain.LeaveSummary
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no leave summary found for given parameters", ErrNotFound)
	}
	return &list[0], nil
}

// call performs one HTTP exchange with the per-call timeout applied and
// the observer notified on completion.
func (c *client) call(ctx context.Context, op, method, path string, query url.Values) ([]byte, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body, err := c.doRequest(ctx, method, path, query)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %s", ErrTimeout, op)
		} else if isConnectionError(err) {
			err = fmt.Errorf("%w: %s", ErrUnavailable, op)
		}
		c.observer.OnCallComplete(CallEvent{
			Operation: op,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(CallEvent{
		Operation: op,
		LatencyMs: latency,
		Success:   true,
	})
	return body, nil
}

func (c *client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erp returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// toAPIDate converts "2006-01-02" to the "02-Jan-2006" form the summary
// endpoint expects, passing through anything it cannot parse.
func toAPIDate(d string) string {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return d
	}
	return t.Format("02-Jan-2006")
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnexpectedPayload):
		return "BAD_PAYLOAD"
	default:
		return "UNKNOWN"
	}
}
