// Package requests reviews employee profile update requests.
package requests

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"admin-console/internal/apperr"
	"admin-console/internal/auth"
	"admin-console/internal/models"

	"go.uber.org/zap"
)

type Backend interface {
	ListUpdateRequests(ctx context.Context) ([]models.Employee, error)
	AcceptRequest(ctx context.Context, update models.EmployeeUpdate) (string, error)
	RejectRequest(ctx context.Context, requestID int) (string, error)
}

type Auditor interface {
	Record(ctx context.Context, identityID uint, entity, entityID, action, details string)
}

// UpdateRequest — сотрудник в состоянии "ждёт проверки" плюс разобранная заявка.
type UpdateRequest struct {
	Employee models.Employee `json:"employee"`
	Info     SubmittedInfo   `json:"submittedInfo"`
}

func (r UpdateRequest) ID() int { return r.Employee.ID }

// Update — тело подтверждения: поля заявки уже перенесены в профиль,
// сама заявка уходит объектом.
func (r UpdateRequest) Update() models.EmployeeUpdate {
	return models.EmployeeUpdate{
		Employee:      r.Info.Apply(r.Employee),
		SubmittedInfo: r.Info.Fields(),
	}
}

type Reconciler struct {
	backend Backend
	audit   Auditor
	log     *zap.Logger

	// decideMu держится на время Refresh и решения по заявке, чтобы
	// перечитанный список не вернул уже принятую или отклонённую заявку.
	decideMu sync.Mutex

	mu      sync.RWMutex
	pending []UpdateRequest
}

func New(backend Backend, audit Auditor, log *zap.Logger) *Reconciler {
	return &Reconciler{backend: backend, audit: audit, log: log}
}

// Refresh перечитывает ожидающие заявки. Битые заявки в список не попадают,
// их id возвращаются вторым значением.
func (r *Reconciler) Refresh(ctx context.Context) ([]int, error) {
	r.decideMu.Lock()
	defer r.decideMu.Unlock()

	employees, err := r.backend.ListUpdateRequests(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]UpdateRequest, 0, len(employees))
	var malformed []int
	for _, e := range employees {
		fields, err := ParseSubmittedInfo(e.SubmittedInfo)
		if err != nil {
			r.log.Warn("skipping malformed update request", zap.Int("request_id", e.ID), zap.Error(err))
			malformed = append(malformed, e.ID)
			continue
		}
		pending = append(pending, UpdateRequest{Employee: e, Info: infoFromMap(fields)})
	}

	r.mu.Lock()
	r.pending = pending
	r.mu.Unlock()
	return malformed, nil
}

func (r *Reconciler) Pending() []UpdateRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]UpdateRequest(nil), r.pending...)
}

func (r *Reconciler) Get(id int) (UpdateRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.pending {
		if req.ID() == id {
			return req, true
		}
	}
	return UpdateRequest{}, false
}

// Search — по ФИО, почте, филиалу, роли (без регистра) и телефону (подстрокой).
// Пустой запрос отдаёт весь список.
func (r *Reconciler) Search(query string) []UpdateRequest {
	query = strings.TrimSpace(query)
	all := r.Pending()
	if query == "" {
		return all
	}
	q := strings.ToLower(query)

	var out []UpdateRequest
	for _, req := range all {
		e := req.Employee
		if strings.Contains(strings.ToLower(e.Fullname), q) ||
			strings.Contains(strings.ToLower(e.Email), q) ||
			strings.Contains(strings.ToLower(e.BranchName), q) ||
			strings.Contains(strings.ToLower(e.RoleName), q) ||
			strings.Contains(e.PhoneNumber, query) {
			out = append(out, req)
		}
	}
	return out
}

// lookup ищет заявку в снимке, при промахе один раз перечитывает список
// (например, сразу после рестарта).
func (r *Reconciler) lookup(ctx context.Context, id int) error {
	if _, ok := r.Get(id); ok {
		return nil
	}
	if _, err := r.Refresh(ctx); err != nil {
		return err
	}
	if _, ok := r.Get(id); !ok {
		return fmt.Errorf("update request %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// Accept переносит поля заявки на сотрудника и отправляет его целиком.
// Из списка заявка уходит только после успешного ответа.
func (r *Reconciler) Accept(ctx context.Context, s *auth.Session, id int) (string, error) {
	if err := auth.Require(s, models.PermReviewRequests); err != nil {
		return "", err
	}
	if err := r.lookup(ctx, id); err != nil {
		return "", err
	}

	r.decideMu.Lock()
	defer r.decideMu.Unlock()
	req, ok := r.Get(id)
	if !ok {
		return "", fmt.Errorf("update request %d: %w", id, apperr.ErrNotFound)
	}

	msg, err := r.backend.AcceptRequest(ctx, req.Update())
	if err != nil {
		return "", err
	}
	r.remove(id)
	r.log.Info("update request accepted",
		zap.Int("request_id", id),
		zap.String("email", maskEmail(req.Info.Email)),
		zap.String("phone", maskPhone(req.Info.PhoneNumber)),
	)
	r.audit.Record(ctx, s.IdentityID, "request", strconv.Itoa(id), "accept", auditDetails(req.Info))
	return msg, nil
}

func (r *Reconciler) Reject(ctx context.Context, s *auth.Session, id int) (string, error) {
	if err := auth.Require(s, models.PermReviewRequests); err != nil {
		return "", err
	}
	if err := r.lookup(ctx, id); err != nil {
		return "", err
	}

	r.decideMu.Lock()
	defer r.decideMu.Unlock()
	req, ok := r.Get(id)
	if !ok {
		return "", fmt.Errorf("update request %d: %w", id, apperr.ErrNotFound)
	}

	msg, err := r.backend.RejectRequest(ctx, id)
	if err != nil {
		return "", err
	}
	r.remove(id)
	r.log.Info("update request rejected", zap.Int("request_id", id))
	r.audit.Record(ctx, s.IdentityID, "request", strconv.Itoa(id), "reject", auditDetails(req.Info))
	return msg, nil
}

// в журнал контакты пишем замаскированными
func auditDetails(i SubmittedInfo) string {
	return "email:" + maskEmail(i.Email) + ", phonenumber:" + maskPhone(i.PhoneNumber)
}

func (r *Reconciler) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.pending[:0:0]
	for _, req := range r.pending {
		if req.ID() != id {
			kept = append(kept, req)
		}
	}
	r.pending = kept
}

// Page режет список на страницы; page с нуля, size по умолчанию 10.
func Page(items []UpdateRequest, page, size int) []UpdateRequest {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	// сравниваем до умножения: page*size переполняется на огромных значениях
	if len(items) == 0 || page > (len(items)-1)/size {
		return []UpdateRequest{}
	}
	start := page * size
	end := len(items)
	if size < end-start {
		end = start + size
	}
	return items[start:end]
}
