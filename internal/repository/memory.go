package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"careconnect-server/internal/models"
)

// MemoryStore is an in-memory Store used in tests and local development.
// Reads return copies, and SwapAppointment enforces the same version
// compare-and-swap contract as the database-backed store. Atomic runs fn
// directly; mutations are applied eagerly without rollback.
type MemoryStore struct {
	mu sync.Mutex

	users        map[string]*models.User
	tokens       map[string]*models.RefreshToken
	patients     map[string]*models.Patient
	caregivers   map[string]*models.Caregiver
	caregiverIDs []string // preserves storage order
	appointments map[string]*models.Appointment
	reviews      map[string]*models.Review
	licenses     map[string]*models.LicenseDocument
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*models.User),
		tokens:       make(map[string]*models.RefreshToken),
		patients:     make(map[string]*models.Patient),
		caregivers:   make(map[string]*models.Caregiver),
		appointments: make(map[string]*models.Appointment),
		reviews:      make(map[string]*models.Review),
		licenses:     make(map[string]*models.LicenseDocument),
	}
}

func (s *MemoryStore) Atomic(fn func(Store) error) error {
	return fn(s)
}

func ensureID(base *models.BaseModel) {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func (s *MemoryStore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&u.BaseModel)
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) UserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateRefreshToken(t *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&t.BaseModel)
	cp := *t
	s.tokens[t.Token] = &cp
	return nil
}

func (s *MemoryStore) RefreshTokenByToken(token string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok || t.IsRevoked || t.ExpiresAt.Before(time.Now()) {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemoryStore) SaveRefreshToken(t *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tokens[t.Token] = &cp
	return nil
}

func (s *MemoryStore) CreatePatient(p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.BaseModel)
	cp := *p
	s.patients[p.ID] = &cp
	return nil
}

func (s *MemoryStore) PatientByID(id string) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) PatientByUserID(userID string) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateCaregiver(cg *models.Caregiver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&cg.BaseModel)
	cp := *cg
	s.caregivers[cg.ID] = &cp
	s.caregiverIDs = append(s.caregiverIDs, cg.ID)
	return nil
}

func (s *MemoryStore) CaregiverByID(id string) (*models.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cg, ok := s.caregivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *cg
	return &cp, nil
}

func (s *MemoryStore) CaregiverByUserID(userID string) (*models.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cg := range s.caregivers {
		if cg.UserID == userID {
			cp := *cg
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListCaregivers() ([]models.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Caregiver, 0, len(s.caregiverIDs))
	for _, id := range s.caregiverIDs {
		out = append(out, *s.caregivers[id])
	}
	return out, nil
}

func (s *MemoryStore) AvailableCaregivers() ([]models.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Caregiver
	for _, id := range s.caregiverIDs {
		if s.caregivers[id].Available {
			out = append(out, *s.caregivers[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveCaregiver(cg *models.Caregiver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.caregivers[cg.ID]; !ok {
		return ErrNotFound
	}
	cp := *cg
	s.caregivers[cg.ID] = &cp
	return nil
}

func (s *MemoryStore) CreateAppointment(a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&a.BaseModel)
	cp := *a
	s.appointments[a.ID] = &cp
	return nil
}

func (s *MemoryStore) AppointmentByID(id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *MemoryStore) AppointmentsByPatient(patientID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *MemoryStore) AppointmentsByCaregiver(caregiverID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.CaregiverID == caregiverID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *MemoryStore) AppointmentsBetween(from, to time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if !a.DateTime.Before(from) && a.DateTime.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *MemoryStore) SwapAppointment(a *models.Appointment, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.appointments[a.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrConflict
	}
	a.Version = expectedVersion + 1
	cp := *a
	cp.UpdatedAt = time.Now()
	s.appointments[a.ID] = &cp
	return nil
}

func (s *MemoryStore) CreateReview(r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reviews {
		if existing.AppointmentID == r.AppointmentID {
			return ErrConflict
		}
	}
	ensureID(&r.BaseModel)
	cp := *r
	s.reviews[r.ID] = &cp
	return nil
}

func (s *MemoryStore) ReviewByAppointment(appointmentID string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.AppointmentID == appointmentID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ReviewsByCaregiver(caregiverID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.CaregiverID == caregiverID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateLicense(doc *models.LicenseDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&doc.BaseModel)
	cp := *doc
	s.licenses[doc.ID] = &cp
	return nil
}

func (s *MemoryStore) LicenseByID(id string) (*models.LicenseDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.licenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (s *MemoryStore) LicensesByCaregiver(caregiverID string) ([]models.LicenseDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LicenseDocument
	for _, doc := range s.licenses {
		if doc.CaregiverID == caregiverID {
			out = append(out, *doc)
		}
	}
	return out, nil
}
