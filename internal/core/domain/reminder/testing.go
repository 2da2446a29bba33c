package reminder

import (
	"context"
	"fmt"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/user"
	"sort"
	"sync"
	"time"
)

type FakeRecipient struct {
	Name  string
	Email c.Email
	Phone c.Optional[c.PhoneNumber]
}

type FakeMedication struct {
	Name   string
	Dosage string
}

// FakeRepository keeps reminders in memory. ReadDue evaluates
// DueOptions.Matches.
type FakeRepository struct {
	Reminders   []Reminder
	Recipients  map[user.ID]FakeRecipient
	Medications map[MedicationID]FakeMedication

	ReturnError   bool
	ReadDueError  error
	MarkSentError error
	ReadDueWith   []DueOptions
	MarkSentWith  []MarkSentInput

	// lastID only grows, so IDs of deleted entries are never reused.
	lastID ID
	lock   sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Recipients:  make(map[user.ID]FakeRecipient),
		Medications: make(map[MedicationID]FakeMedication),
	}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.ReturnError {
		return rem, fmt.Errorf("could not create reminder %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Reminders {
		if existing.ID > r.lastID {
			r.lastID = existing.ID
		}
	}
	r.lastID++
	rem = Reminder{
		ID:           r.lastID,
		MedicationID: input.MedicationID,
		UserID:       input.UserID,
		RemindTime:   input.RemindTime,
		NotifyType:   input.NotifyType,
		Active:       input.Active,
		CreatedAt:    input.CreatedAt,
	}
	r.Reminders = append(r.Reminders, rem)
	return rem, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (rem ReminderWithMedication, err error) {
	if r.ReturnError {
		return rem, fmt.Errorf("could not get reminder %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Reminders {
		if existing.ID == id {
			return r.withMedication(existing), nil
		}
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeRepository) ReadByUser(ctx context.Context, userID user.ID) ([]ReminderWithMedication, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read reminders of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]ReminderWithMedication, 0, len(r.Reminders))
	for _, existing := range r.Reminders {
		if existing.UserID == userID {
			result = append(result, r.withMedication(existing))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].RemindTime.Before(result[j].RemindTime) })
	return result, nil
}

func (r *FakeRepository) ReadByMedication(ctx context.Context, medicationID MedicationID) ([]Reminder, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read reminders of medication %d", medicationID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]Reminder, 0, len(r.Reminders))
	for _, existing := range r.Reminders {
		if existing.MedicationID == medicationID {
			result = append(result, existing)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].RemindTime.Before(result[j].RemindTime) })
	return result, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (rem Reminder, err error) {
	if r.ReturnError {
		return rem, fmt.Errorf("could not update reminder %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Reminders {
		if existing.ID == input.ID {
			r.Reminders[ix] = input.Apply(existing)
			return r.Reminders[ix], nil
		}
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete reminder %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Reminders {
		if existing.ID == id {
			r.Reminders = append(r.Reminders[:ix], r.Reminders[ix+1:]...)
			return nil
		}
	}
	return ErrReminderDoesNotExist
}

// DeleteByMedication emulates the cascade of a deleted medication.
func (r *FakeRepository) DeleteByMedication(medicationID MedicationID) {
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Reminders[:0]
	for _, existing := range r.Reminders {
		if existing.MedicationID != medicationID {
			kept = append(kept, existing)
		}
	}
	r.Reminders = kept
}

func (r *FakeRepository) ReadDue(ctx context.Context, options DueOptions) ([]DueReminder, error) {
	if r.ReadDueError != nil {
		return nil, r.ReadDueError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ReadDueWith = append(r.ReadDueWith, options)
	result := make([]DueReminder, 0)
	for _, existing := range r.Reminders {
		if !options.Matches(&existing) {
			continue
		}
		recipient := r.Recipients[existing.UserID]
		medication := r.Medications[existing.MedicationID]
		result = append(result, DueReminder{
			Reminder:         existing,
			UserName:         recipient.Name,
			UserEmail:        recipient.Email,
			UserPhone:        recipient.Phone,
			MedicationName:   medication.Name,
			MedicationDosage: medication.Dosage,
		})
	}
	return result, nil
}

func (r *FakeRepository) MarkSent(ctx context.Context, input MarkSentInput) (bool, error) {
	if r.MarkSentError != nil {
		return false, r.MarkSentError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.MarkSentWith = append(r.MarkSentWith, input)
	for ix, existing := range r.Reminders {
		if existing.ID == input.ID {
			if existing.WasSentOn(input.Day) {
				return false, nil
			}
			r.Reminders[ix].LastSent = c.NewOptional(input.At, true)
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeRepository) Get(id ID) Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Reminders {
		if existing.ID == id {
			return existing
		}
	}
	panic(fmt.Sprintf("reminder %d not found", id))
}

func (r *FakeRepository) withMedication(rem Reminder) ReminderWithMedication {
	medication := r.Medications[rem.MedicationID]
	return ReminderWithMedication{
		Reminder:         rem,
		MedicationName:   medication.Name,
		MedicationDosage: medication.Dosage,
	}
}

type FakeEmailSender struct {
	Sent  []EmailMessage
	Error error
	lock  sync.Mutex
}

func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{}
}

func (s *FakeEmailSender) SendReminderEmail(ctx context.Context, message EmailMessage) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, message)
	return s.Error
}

func (s *FakeEmailSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeCallPlacer struct {
	Placed []CallMessage
	Error  error
	lock   sync.Mutex
}

func NewFakeCallPlacer() *FakeCallPlacer {
	return &FakeCallPlacer{}
}

func (p *FakeCallPlacer) PlaceReminderCall(ctx context.Context, message CallMessage) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Placed = append(p.Placed, message)
	return p.Error
}

func (p *FakeCallPlacer) PlacedCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.Placed)
}

type FakeEventPublisher struct {
	Published []DueReminder
	Error     error
	lock      sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{}
}

func (p *FakeEventPublisher) PublishReminderEvent(ctx context.Context, r DueReminder, at time.Time) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, r)
	return p.Error
}
