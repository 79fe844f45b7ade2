package components

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/blackfish/models"
)

const (
	DefaultSubmitDelay   = 1500 * time.Millisecond
	DefaultConfirmWindow = 5000 * time.Millisecond
)

// BackOffice receives complete reservation requests.
type BackOffice interface {
	Accept(ctx context.Context, req models.ReservationRequest) (models.ReservationOutcome, error)
}

type ReservationConfig struct {
	SubmitDelay   time.Duration
	ConfirmWindow time.Duration
}

type ReservationSnapshot struct {
	State          models.ReservationState   `json:"state"`
	Draft          models.ReservationRequest `json:"draft"`
	Reason         string                    `json:"reason,omitempty"`
	Reference      string                    `json:"reference,omitempty"`
	SubmitDisabled bool                      `json:"submit_disabled"`
	LargeParty     bool                      `json:"large_party"`
	Generation     uint64                    `json:"generation"`
}

// ReservationForm is the editing → submitting → confirmed → editing cycle
// of one page view, with a failed branch when the back office declines.
//
// Each submission bumps the generation. A deferred transition carries the
// generation it was scheduled under and does nothing if that is no longer
// current or the form has been closed.
type ReservationForm struct {
	mu         sync.Mutex
	cfg        ReservationConfig
	backOffice BackOffice
	scheduler  Scheduler
	log        logrus.FieldLogger
	onChange   func(ReservationSnapshot)

	draft      models.ReservationRequest
	state      models.ReservationState
	reason     string
	reference  string
	generation uint64
	pending    Timer
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
}

type ReservationDeps struct {
	BackOffice BackOffice
	Scheduler  Scheduler
	Logger     logrus.FieldLogger
	// OnChange receives a snapshot after every deferred transition.
	OnChange func(ReservationSnapshot)
}

func NewReservationForm(cfg ReservationConfig, deps ReservationDeps) *ReservationForm {
	if cfg.SubmitDelay <= 0 {
		cfg.SubmitDelay = DefaultSubmitDelay
	}
	if cfg.ConfirmWindow <= 0 {
		cfg.ConfirmWindow = DefaultConfirmWindow
	}
	if deps.Scheduler == nil {
		deps.Scheduler = WallClock
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ReservationForm{
		cfg:        cfg,
		backOffice: deps.BackOffice,
		scheduler:  deps.Scheduler,
		log:        deps.Logger,
		onChange:   deps.OnChange,
		draft:      models.NewReservationRequest(),
		state:      models.ReservationEditing,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Update changes one field of the draft. Editing a failed request returns
// the form to editing with the draft kept.
func (f *ReservationForm) Update(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if err := f.draft.Set(field, value); err != nil {
		return err
	}
	f.reviseLocked()
	return nil
}

// Fill replaces the whole draft, as a posted form does.
func (f *ReservationForm) Fill(req models.ReservationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.draft = req
	f.reviseLocked()
	return nil
}

// Revise leaves the failed state without touching the draft.
func (f *ReservationForm) Revise() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.reviseLocked()
	return nil
}

func (f *ReservationForm) editableLocked() error {
	if f.closed {
		return models.ConflictError{Resource: "reservation", Msg: "form is closed"}
	}
	switch f.state {
	case models.ReservationSubmitting:
		return models.ConflictError{Resource: "reservation", Msg: "a submission is in progress"}
	case models.ReservationConfirmed:
		return models.ConflictError{Resource: "reservation", Msg: "the request was already received"}
	}
	return nil
}

func (f *ReservationForm) reviseLocked() {
	if f.state == models.ReservationFailed {
		f.state = models.ReservationEditing
		f.reason = ""
	}
}

// Submit freezes the draft and schedules its hand-off to the back office.
// An incomplete draft never leaves editing, and at most one submission is in
// flight per form.
func (f *ReservationForm) Submit() (ReservationSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return f.snapshotLocked(), err
	}
	if field := f.draft.MissingField(); field != "" {
		return f.snapshotLocked(), models.ValidationError{Field: field, Msg: "is required"}
	}

	f.generation++
	gen := f.generation
	frozen := f.draft
	f.state = models.ReservationSubmitting
	f.reason = ""
	f.reference = ""
	f.pending = f.scheduler.AfterFunc(f.cfg.SubmitDelay, func() {
		f.deliver(gen, frozen)
	})

	f.log.WithFields(logrus.Fields{
		"generation": gen,
		"guests":     frozen.Guests,
		"date":       frozen.Date,
		"slot":       frozen.Time,
	}).Info("reservation submitted")
	return f.snapshotLocked(), nil
}

func (f *ReservationForm) current(gen uint64, want models.ReservationState) bool {
	return !f.closed && gen == f.generation && f.state == want
}

func (f *ReservationForm) deliver(gen uint64, req models.ReservationRequest) {
	f.mu.Lock()
	if !f.current(gen, models.ReservationSubmitting) {
		f.mu.Unlock()
		f.log.WithField("generation", gen).Debug("dropping stale submission")
		return
	}
	ctx := f.ctx
	f.mu.Unlock()

	var (
		outcome models.ReservationOutcome
		err     error
	)
	if f.backOffice == nil {
		outcome = models.Accepted("")
	} else {
		outcome, err = f.backOffice.Accept(ctx, req)
	}

	f.mu.Lock()
	if !f.current(gen, models.ReservationSubmitting) {
		f.mu.Unlock()
		f.log.WithField("generation", gen).Debug("dropping stale back-office outcome")
		return
	}
	switch {
	case err != nil:
		f.log.WithError(err).WithField("generation", gen).Error("back office unavailable")
		f.state = models.ReservationFailed
		f.reason = models.ReasonUnavailable
		f.pending = nil
	case outcome.Accepted:
		f.state = models.ReservationConfirmed
		f.reference = outcome.Reference
		f.pending = f.scheduler.AfterFunc(f.cfg.ConfirmWindow, func() {
			f.reset(gen)
		})
		f.log.WithFields(logrus.Fields{"generation": gen, "reference": outcome.Reference}).Info("reservation accepted")
	default:
		f.state = models.ReservationFailed
		f.reason = outcome.Reason
		f.pending = nil
		f.log.WithFields(logrus.Fields{"generation": gen, "reason": outcome.Reason}).Warn("reservation rejected")
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
}

func (f *ReservationForm) reset(gen uint64) {
	f.mu.Lock()
	if !f.current(gen, models.ReservationConfirmed) {
		f.mu.Unlock()
		f.log.WithField("generation", gen).Debug("dropping stale reset")
		return
	}
	f.draft = models.NewReservationRequest()
	f.state = models.ReservationEditing
	f.reference = ""
	f.pending = nil
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
}

func (f *ReservationForm) notify(snap ReservationSnapshot) {
	if f.onChange != nil {
		f.onChange(snap)
	}
}

func (f *ReservationForm) Snapshot() ReservationSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *ReservationForm) snapshotLocked() ReservationSnapshot {
	return ReservationSnapshot{
		State:          f.state,
		Draft:          f.draft,
		Reason:         f.reason,
		Reference:      f.reference,
		SubmitDisabled: f.state == models.ReservationSubmitting,
		LargeParty:     f.draft.IsLargeParty(),
		Generation:     f.generation,
	}
}

// Close cancels any pending transition and any back-office call in flight.
// The form rejects further input afterwards.
func (f *ReservationForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.generation++
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.cancel()
}
