package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
)

// UserService covers profile reads and the mutations that happen outside the
// credential lifecycle: names, activation flags, verification, deletion.
type UserService struct {
	Repo         repo.UserRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Notifier     *Notifier
	Now          func() time.Time
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, notifier *Notifier) *UserService {
	return &UserService{
		Repo:         r,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Notifier:     notifier,
		Now:          time.Now,
	}
}

func (s *UserService) load(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.load(ctx, id)
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	changes := map[string]string{}
	if in.FirstName != nil {
		changes["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		changes["last_name"] = strings.TrimSpace(*in.LastName)
	}
	u.UpdateProfile(in.FirstName, in.LastName, s.Now())
	patch := repo.UserPatch{UpdatedAt: u.UpdatedAt}
	if in.FirstName != nil {
		patch.FirstName = u.FirstName
	}
	if in.LastName != nil {
		patch.LastName = u.LastName
	}
	if u, err = s.save(ctx, id, patch); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	if len(changes) > 0 {
		s.Notifier.ProfileUpdated(ctx, u, changes)
	}
	return u, nil
}

// SetActive activates or deactivates an account. Already-issued tokens stop
// resolving on the next AuthGate call.
func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		u.Activate(s.Now())
	} else {
		u.Deactivate(s.Now())
	}
	if u, err = s.save(ctx, id, repo.UserPatch{IsActive: &active, UpdatedAt: u.UpdatedAt}); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

func (s *UserService) MarkVerified(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	u.MarkVerified(s.Now())
	verified := true
	return s.save(ctx, id, repo.UserPatch{IsVerified: &verified, UpdatedAt: u.UpdatedAt})
}

// save writes only the patched columns and returns the stored row.
func (s *UserService) save(ctx context.Context, id uuid.UUID, p repo.UserPatch) (*entity.User, error) {
	if err := s.Repo.Patch(ctx, id, p); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

func (s *UserService) List(ctx context.Context, filter repo.ListFilter) ([]*entity.User, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.Repo.List(ctx, filter)
}

// IndexUser pushes the public profile of u to Elasticsearch. Failures are logged only.
func (s *UserService) IndexUser(ctx context.Context, u *entity.User) {
	_ = s.indexUser(ctx, u)
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          u.ID.String(),
		"email":       u.Email.String(),
		"full_name":   u.FullName(),
		"is_active":   u.IsActive,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID.String(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.String()).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID.String()).Warn("es index response error")
	}
	return nil
}

func (s *UserService) removeFromIndex(ctx context.Context, id uuid.UUID) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id.String()}.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.String()).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "full_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
