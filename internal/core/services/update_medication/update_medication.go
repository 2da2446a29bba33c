package updatemedication

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	uow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	"sort"
	"time"
)

type Input struct {
	UserID user.ID
	Update medication.UpdateInput
	// NotifyType is used for reminders of newly added times. When absent the
	// channel of the existing reminders is reused.
	NotifyType c.Optional[reminder.NotifyType]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Medication medication.Medication
	Reminders  []reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Update.DoNameUpdate && input.Update.Name == "" {
		return result, medication.ErrNameRequired
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Medications().Lock(ctx, input.Update.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	current, err := uow.Medications().GetByID(ctx, input.Update.ID)
	if errors.Is(err, medication.ErrMedicationDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if current.UserID != input.UserID {
		return result, medication.ErrMedicationDoesNotExist
	}

	updated := input.Update.Apply(current)
	if err := medication.ValidateSchedule(updated.Times, updated.StartDate, updated.EndDate); err != nil {
		return result, err
	}

	if !input.Update.IsEmpty() {
		updated, err = uow.Medications().Update(ctx, input.Update)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
			return result, err
		}
	}

	reminders, err := uow.Reminders().ReadByMedication(ctx, updated.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if input.Update.DoTimesUpdate {
		reminders, err = s.syncReminders(ctx, uow, current.Times, updated, reminders, input)
		if err != nil {
			return result, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Medication updated.",
		logging.Entry("medicationID", updated.ID),
		logging.Entry("userID", input.UserID),
	)
	return Result{Medication: updated, Reminders: reminders}, nil
}

// syncReminders applies the change between the previous and the new times of
// the medication: reminders at removed times are deleted and added times get
// a reminder unless one exists already. Reminders created on their own at
// other times are left alone.
func (s *service) syncReminders(
	ctx context.Context,
	uow uow.Context,
	previousTimes []reminder.ClockTime,
	m medication.Medication,
	existing []reminder.Reminder,
	input Input,
) ([]reminder.Reminder, error) {
	added, removed := medication.SyncTimes(previousTimes, m.Times)

	removedSet := make(map[reminder.ClockTime]struct{}, len(removed))
	for _, t := range removed {
		removedSet[t] = struct{}{}
	}
	kept := make([]reminder.Reminder, 0, len(existing)+len(added))
	keptTimes := make(map[reminder.ClockTime]struct{}, len(existing))
	for _, r := range existing {
		if _, ok := removedSet[r.RemindTime]; !ok {
			kept = append(kept, r)
			keptTimes[r.RemindTime] = struct{}{}
			continue
		}
		if err := uow.Reminders().Delete(ctx, r.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", r.ID))
			return nil, err
		}
	}

	notifyType := reminder.DEFAULT_NOTIFY_TYPE
	if input.NotifyType.IsPresent {
		notifyType = input.NotifyType.Value
	} else if len(existing) > 0 {
		notifyType = existing[0].NotifyType
	}
	now := s.now()
	for _, at := range added {
		if _, ok := keptTimes[at]; ok {
			continue
		}
		created, err := uow.Reminders().Create(ctx, reminder.CreateInput{
			MedicationID: m.ID,
			UserID:       m.UserID,
			RemindTime:   at,
			NotifyType:   notifyType,
			Active:       true,
			CreatedAt:    now,
		})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("medicationID", m.ID), logging.Entry("at", at))
			return nil, err
		}
		kept = append(kept, created)
	}

	if len(added) > 0 || len(removed) > 0 {
		s.log.Info(
			ctx,
			"Medication reminders synchronised.",
			logging.Entry("medicationID", m.ID),
			logging.Entry("added", added),
			logging.Entry("removed", removed),
		)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].RemindTime.Before(kept[j].RemindTime) })
	return kept, nil
}
