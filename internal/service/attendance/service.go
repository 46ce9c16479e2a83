package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/satfield/sfa-backend-go/internal/config"
	"github.com/satfield/sfa-backend-go/internal/domain/attendance"
	"github.com/satfield/sfa-backend-go/internal/pkg/timeutil"
)

// Deadlines are the parsed wall-clock constants driving classification and
// the punch gate.
type Deadlines struct {
	PunchInDeadline timeutil.Clock // latest full-day punch-in, e.g. 09:45
	PunchOutMinimum timeutil.Clock // earliest full-day punch-out, e.g. 18:25
	NextDayReopen   timeutil.Clock // punches re-open next day, e.g. 08:45
}

// DeadlinesFromConfig parses the configured HH:MM strings. Malformed
// values fail loudly at startup.
func DeadlinesFromConfig(cfg config.AttendanceConfig) (Deadlines, error) {
	punchIn, err := timeutil.ParseClock(cfg.PunchInDeadline)
	if err != nil {
		return Deadlines{}, fmt.Errorf("punch-in deadline: %w", err)
	}
	punchOut, err := timeutil.ParseClock(cfg.PunchOutMinimum)
	if err != nil {
		return Deadlines{}, fmt.Errorf("punch-out minimum: %w", err)
	}
	reopen, err := timeutil.ParseClock(cfg.NextDayPunchTime)
	if err != nil {
		return Deadlines{}, fmt.Errorf("next-day punch time: %w", err)
	}
	return Deadlines{PunchInDeadline: punchIn, PunchOutMinimum: punchOut, NextDayReopen: reopen}, nil
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	tx        attendance.Transactor
	deadlines Deadlines
	loc       *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

// passthroughTransactor runs fn directly; used when no transactional
// store backs the repository (in-memory fakes).
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func NewAttendanceService(
	repo attendance.AttendanceRepository,
	tx attendance.Transactor,
	deadlines Deadlines,
	loc *time.Location,
	now func() time.Time,
	logger *slog.Logger,
) attendance.AttendanceService {
	if tx == nil {
		tx = passthroughTransactor{}
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		tx:                   tx,
		deadlines:            deadlines,
		loc:                  loc,
		now:                  now,
		logger:               logger,
	}
}

// Classify implements attendance.AttendanceService. Pure projection of the
// punches; the stored status column is only a display cache.
//
// Rules, in order:
//  1. no punch-in and no punch-out: On Leave
//  2. punch-in without punch-out: Half Day (an incomplete day is
//     provisionally short)
//  3. both punches: Present iff punch-in is at or before the deadline and
//     punch-out at or after the minimum, otherwise Half Day
func (a *AttendanceServiceImpl) Classify(record attendance.Attendance) attendance.Status {
	punchIn := record.PunchIn
	punchOut := sanitizePunchOut(record)

	if punchIn == nil {
		return attendance.StatusOnLeave
	}
	if punchOut == nil {
		return attendance.StatusHalfDay
	}

	inClock := timeutil.ClockOf(punchIn.In(a.loc))
	outClock := timeutil.ClockOf(punchOut.In(a.loc))
	if inClock.After(a.deadlines.PunchInDeadline) || !outClock.AtOrAfter(a.deadlines.PunchOutMinimum) {
		return attendance.StatusHalfDay
	}
	return attendance.StatusPresent
}

// sanitizePunchOut drops a punch-out that precedes punch-in. Such a record
// is a data-integrity anomaly; classification must not crash on it, so the
// invalid punch-out is treated as absent.
func sanitizePunchOut(record attendance.Attendance) *time.Time {
	if record.PunchOut == nil || record.PunchIn == nil {
		return record.PunchOut
	}
	if record.PunchOut.Before(*record.PunchIn) {
		return nil
	}
	return record.PunchOut
}

// PunchGate implements attendance.AttendanceService. Advisory state only:
// nothing is persisted, everything is recomputed from the current wall
// clock at minute granularity so a UI can poll it.
func (a *AttendanceServiceImpl) PunchGate(ctx context.Context, ownerID string) (attendance.GateResponse, error) {
	if ownerID == "" {
		return attendance.GateResponse{}, attendance.ErrOwnerRequired
	}

	nowLocal := a.now().In(a.loc)
	nowClock := timeutil.ClockOf(nowLocal)

	today, err := a.AttendanceRepository.GetByOwnerAndDate(ctx, ownerID, dayOf(nowLocal))
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.GateResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	hasToday := err == nil

	if hasToday {
		switch today.State() {
		case attendance.StateComplete:
			return attendance.GateResponse{
				BlockedBy: attendance.BlockAwaitingReopen,
				Reason:    "already punched out; punching re-opens tomorrow at " + a.deadlines.NextDayReopen.String(),
			}, nil
		case attendance.StatePunchedInOnly:
			return attendance.GateResponse{CanPunchOut: true}, nil
		}
	}

	// A completed previous day keeps punches blocked until the re-opening
	// time this morning.
	if nowClock.MinuteOfDay() < a.deadlines.NextDayReopen.MinuteOfDay() {
		yesterday, err := a.AttendanceRepository.GetByOwnerAndDate(ctx, ownerID, dayOf(nowLocal.AddDate(0, 0, -1)))
		if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.GateResponse{}, fmt.Errorf("failed to get yesterday's attendance: %w", err)
		}
		if err == nil && yesterday.State() == attendance.StateComplete {
			return attendance.GateResponse{
				BlockedBy: attendance.BlockAwaitingReopen,
				Reason:    "punching re-opens at " + a.deadlines.NextDayReopen.String(),
			}, nil
		}
	}

	if nowClock.After(a.deadlines.PunchInDeadline) {
		return attendance.GateResponse{
			BlockedBy: attendance.BlockDeadlinePassed,
			Reason:    "punch-in closed at " + a.deadlines.PunchInDeadline.String(),
		}, nil
	}
	return attendance.GateResponse{CanPunchIn: true}, nil
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	gate, err := a.PunchGate(ctx, req.OwnerID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !gate.CanPunchIn {
		if gate.CanPunchOut {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
		}
		if gate.BlockedBy == attendance.BlockAwaitingReopen {
			return attendance.AttendanceResponse{}, attendance.ErrPunchesReopenLater
		}
		return attendance.AttendanceResponse{}, attendance.ErrPunchInClosed
	}

	nowLocal := a.now().In(a.loc)
	record := attendance.Attendance{
		ID:      uuid.NewString(),
		OwnerID: req.OwnerID,
		Date:    dayOf(nowLocal),
		PunchIn: &nowLocal,
	}
	record.Status = a.Classify(record)

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	a.logger.Info("punch-in recorded", "owner_id", req.OwnerID, "date", created.Date.Format("2006-01-02"))
	return a.mapToResponse(created), nil
}

// PunchOut implements attendance.AttendanceService. Completes today's
// record; the record is immutable afterwards. The read-check-update runs
// in one transaction so two racing punch-outs cannot both pass the
// completeness check.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	var record attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		record, err = a.AttendanceRepository.GetByOwnerAndDate(ctx, req.OwnerID, dayOf(nowLocal))
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotPunchedIn
			}
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if record.State() == attendance.StateComplete {
			return attendance.ErrAlreadyPunchedOut
		}
		if record.PunchIn == nil {
			return attendance.ErrNotPunchedIn
		}

		record.PunchOut = &nowLocal
		worked := int(nowLocal.Sub(*record.PunchIn).Seconds())
		if worked < 0 {
			worked = 0
		}
		record.TotalWorkedSeconds = &worked
		record.Status = a.Classify(record)

		if err := a.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.logger.Info("punch-out recorded", "owner_id", req.OwnerID, "status", string(record.Status))
	return a.mapToResponse(record), nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, ownerID string, month time.Time) (attendance.HistoryResponse, error) {
	if ownerID == "" {
		return attendance.HistoryResponse{}, attendance.ErrOwnerRequired
	}

	bounds := timeutil.MonthBounds(month.In(a.loc))
	records, err := a.AttendanceRepository.ListByOwner(ctx, ownerID, bounds.Start, bounds.End)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	stats := attendance.MonthlyStats{TotalDays: len(records)}
	for _, rec := range records {
		resp := a.mapToResponse(rec)
		responses = append(responses, resp)
		switch resp.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusHalfDay:
			stats.HalfDay++
		case attendance.StatusOnLeave:
			stats.OnLeave++
		}
	}

	return attendance.HistoryResponse{Records: responses, Stats: stats}, nil
}

// mapToResponse projects a record for the API, recomputing status so a
// stale stored column can never drift from the deadline constants.
func (a *AttendanceServiceImpl) mapToResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	var workedHours *float64
	if rec.TotalWorkedSeconds != nil {
		hours := float64(*rec.TotalWorkedSeconds) / 3600.0
		workedHours = &hours
	}

	return attendance.AttendanceResponse{
		ID:           rec.ID,
		OwnerID:      rec.OwnerID,
		Date:         rec.Date.Format("2006-01-02"),
		PunchInTime:  timePtrToString(rec.PunchIn),
		PunchOutTime: timePtrToString(rec.PunchOut),
		Status:       a.Classify(rec),
		WorkedHours:  workedHours,
	}
}

// timePtrToString safely converts a *time.Time to a wall-clock string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("15:04:05")
	return &format
}

func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
