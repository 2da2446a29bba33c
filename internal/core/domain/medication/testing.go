package medication

import (
	"context"
	"fmt"
	"medremind/internal/core/domain/user"
	"sort"
	"sync"
)

type FakeRepository struct {
	Medications []Medication
	ReturnError bool
	Locked      []ID

	// lastID only grows, so IDs of deleted entries are never reused.
	lastID ID
	lock   sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (m Medication, err error) {
	if r.ReturnError {
		return m, fmt.Errorf("could not create medication %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Medications {
		if existing.ID > r.lastID {
			r.lastID = existing.ID
		}
	}
	r.lastID++
	m = Medication{
		ID:          r.lastID,
		UserID:      input.UserID,
		Name:        input.Name,
		Dosage:      input.Dosage,
		Frequency:   input.Frequency,
		Times:       input.Times,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		ExpiryDate:  input.ExpiryDate,
		Notes:       input.Notes,
		Description: input.Description,
		ImagePath:   input.ImagePath,
		CreatedAt:   input.CreatedAt,
	}
	r.Medications = append(r.Medications, m)
	return m, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (m Medication, err error) {
	if r.ReturnError {
		return m, fmt.Errorf("could not get medication %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, m := range r.Medications {
		if m.ID == id {
			return m, nil
		}
	}
	return m, ErrMedicationDoesNotExist
}

func (r *FakeRepository) Lock(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Locked = append(r.Locked, id)
	return nil
}

func (r *FakeRepository) ReadByUser(ctx context.Context, userID user.ID) ([]Medication, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read medications of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]Medication, 0, len(r.Medications))
	for _, m := range r.Medications {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (m Medication, err error) {
	if r.ReturnError {
		return m, fmt.Errorf("could not update medication %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Medications {
		if existing.ID == input.ID {
			r.Medications[ix] = input.Apply(existing)
			return r.Medications[ix], nil
		}
	}
	return m, ErrMedicationDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete medication %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Medications {
		if existing.ID == id {
			r.Medications = append(r.Medications[:ix], r.Medications[ix+1:]...)
			return nil
		}
	}
	return ErrMedicationDoesNotExist
}
