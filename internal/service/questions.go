package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"strings"
	"time"
)

type QuestionInput struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Question    string `json:"question"`
}

type QuestionService struct {
	questions store.Questions
	push      *Notifier
	now       func() time.Time
}

func NewQuestionService(questions store.Questions, push *Notifier) *QuestionService {
	return &QuestionService{questions: questions, push: push, now: time.Now}
}

func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	return s.questions.List(ctx)
}

func (s *QuestionService) ByStudent(ctx context.Context, studentID string) ([]model.Question, error) {
	return s.questions.ByStudent(ctx, studentID)
}

// Create stores a pending question and lets the admins know about it
func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*model.Question, error) {
	q := &model.Question{
		StudentID:   strings.TrimSpace(in.StudentID),
		StudentName: strings.TrimSpace(in.StudentName),
		Question:    strings.TrimSpace(in.Question),
		Status:      model.QuestionPending,
		Timestamp:   s.now().UTC(),
	}

	if err := requireFields(map[string]string{
		"studentId":   q.StudentID,
		"studentName": q.StudentName,
		"question":    q.Question,
	}); err != nil {
		return nil, err
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, err
	}

	notifyQuietly("question_created", func() (*PushResult, error) {
		return s.push.NotifyRole(ctx, model.RoleAdmin, Notification{
			Title: "New question from " + q.StudentName,
			Body:  truncate(q.Question, 120),
			Data:  map[string]string{"questionId": q.ID},
		})
	})

	return q, nil
}

// Update sets the reply and/or status. Answering a question stamps
// repliedAt and notifies the student.
func (s *QuestionService) Update(ctx context.Context, id string, p model.QuestionPatch) (*model.Question, error) {
	if p.Status != nil && *p.Status != model.QuestionPending && *p.Status != model.QuestionAnswered {
		return nil, invalid("status must be pending or answered")
	}

	current, err := s.questions.ByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Question")
	}

	p.RepliedAt = nil
	p.Reopen = false
	if p.Status != nil && *p.Status == model.QuestionAnswered {
		now := s.now().UTC()
		p.RepliedAt = &now
	}

	if p.Status != nil && *p.Status == model.QuestionPending && current.Status == model.QuestionAnswered {
		p.Reopen = true
	}

	if len(p.Columns()) == 0 {
		return nil, invalid("nothing to update")
	}

	q, err := s.questions.Update(ctx, id, p)
	if err != nil {
		return nil, mapStoreErr(err, "Question")
	}

	if current.Status != model.QuestionAnswered && q.Status == model.QuestionAnswered {
		body := "An admin answered your question"
		if q.Reply != nil {
			body = truncate(*q.Reply, 120)
		}

		notifyQuietly("question_answered", func() (*PushResult, error) {
			return s.push.NotifyUser(ctx, q.StudentID, Notification{
				Title: "Your question was answered",
				Body:  body,
				Data:  map[string]string{"questionId": q.ID},
			})
		})
	}

	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	_, err := s.questions.Delete(ctx, id)
	return mapStoreErr(err, "Question")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
