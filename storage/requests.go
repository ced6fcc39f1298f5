package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"

	"go.uber.org/zap"
)

var ErrRequestNotFound = errors.New("request not found")

// RequestFilter narrows List. Zero values mean "any".
type RequestFilter struct {
	Kind     string
	TargetID uint
	UserID   uint
	Status   string
}

// RequestStore is the request registry. Two implementations exist: a
// postgres-backed one and a device-local JSON blob, selected by the
// REQUEST_STORE environment variable. All writes are last-writer-wins and
// duplicates are retained by design.
type RequestStore interface {
	Add(req *models.Request) error
	Get(id uint) (*models.Request, error)
	List(f RequestFilter) ([]models.Request, error)
	UpdateStatus(id uint, status string) (*models.Request, error)
	Update(id uint, patch map[string]interface{}) (*models.Request, error)
	Delete(id uint) error
}

// OpenRequestStore picks the configured registry backend.
func OpenRequestStore(logger *zap.Logger) RequestStore {
	if os.Getenv("REQUEST_STORE") == "file" {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		return NewFileRequestStore(filepath.Join(dataDir, "requests.json"), logger)
	}
	return NewGormRequestStore()
}

// ---- postgres-backed registry ----

type GormRequestStore struct{}

func NewGormRequestStore() *GormRequestStore {
	return &GormRequestStore{}
}

func (s *GormRequestStore) Add(req *models.Request) error {
	if req.Status == "" {
		req.Status = models.RequestStatuses(req.Kind)[0]
	}
	return DB.Create(req).Error
}

func (s *GormRequestStore) Get(id uint) (*models.Request, error) {
	var req models.Request
	if err := DB.First(&req, id).Error; err != nil {
		return nil, ErrRequestNotFound
	}
	return &req, nil
}

func (s *GormRequestStore) List(f RequestFilter) ([]models.Request, error) {
	q := DB.Model(&models.Request{})
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.TargetID != 0 {
		q = q.Where("target_id = ?", f.TargetID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var items []models.Request
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormRequestStore) UpdateStatus(id uint, status string) (*models.Request, error) {
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	req.Status = status
	if err := DB.Save(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

func (s *GormRequestStore) Update(id uint, patch map[string]interface{}) (*models.Request, error) {
	if err := DB.Model(&models.Request{}).Where("id = ?", id).Updates(patch).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *GormRequestStore) Delete(id uint) error {
	res := DB.Delete(&models.Request{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// ---- device-local JSON blob registry ----

// FileRequestStore keeps the whole registry as one JSON blob under a fixed
// path. A corrupt blob is replaced with an empty collection and logged; no
// error is fatal.
type FileRequestStore struct {
	mu     sync.Mutex
	path   string
	nextID uint
	items  []models.Request
	logger *zap.Logger
}

func NewFileRequestStore(path string, logger *zap.Logger) *FileRequestStore {
	s := &FileRequestStore{path: path, nextID: 1, logger: logger}
	s.load()
	return s
}

func (s *FileRequestStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("request blob unreadable, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		s.logger.Warn("request blob corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		s.items = nil
		return
	}
	for _, r := range s.items {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
}

// persist writes the whole blob back. Caller holds the lock.
func (s *FileRequestStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileRequestStore) Add(req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = s.nextID
	s.nextID++
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = models.RequestStatuses(req.Kind)[0]
	}
	s.items = append(s.items, *req)
	return s.persist()
}

func (s *FileRequestStore) Get(id uint) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil, ErrRequestNotFound
	}
	req := s.items[i]
	return &req, nil
}

func (s *FileRequestStore) List(f RequestFilter) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Request, 0, len(s.items))
	for _, r := range s.items {
		if f.Kind != "" && r.Kind != f.Kind {
			continue
		}
		if f.TargetID != 0 && r.TargetID != f.TargetID {
			continue
		}
		if f.UserID != 0 && r.UserID != f.UserID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FileRequestStore) UpdateStatus(id uint, status string) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil, ErrRequestNotFound
	}
	s.items[i].Status = status
	s.items[i].UpdatedAt = time.Now()
	if err := s.persist(); err != nil {
		return nil, err
	}
	req := s.items[i]
	return &req, nil
}

func (s *FileRequestStore) Update(id uint, patch map[string]interface{}) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil, ErrRequestNotFound
	}
	r := &s.items[i]
	for key, val := range patch {
		switch key {
		case "status":
			if v, ok := val.(string); ok {
				r.Status = v
			}
		case "payment_status":
			if v, ok := val.(string); ok {
				r.PaymentStatus = v
			}
		case "payment_method":
			if v, ok := val.(string); ok {
				r.PaymentMethod = v
			}
		case "payment_amount":
			if v, ok := val.(float64); ok {
				r.PaymentAmount = v
			}
		case "user_name":
			if v, ok := val.(string); ok {
				r.UserName = v
			}
		}
	}
	r.UpdatedAt = time.Now()
	if err := s.persist(); err != nil {
		return nil, err
	}
	req := *r
	return &req, nil
}

func (s *FileRequestStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrRequestNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist()
}

// index returns the position of id in items, or -1. Caller holds the lock.
func (s *FileRequestStore) index(id uint) int {
	for i, r := range s.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}
