package services

import (
	"context"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/moderation"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// QuestionService manages questions. Create and Update pass title and
// content through the content filter; Update and Delete are gated on
// ownership.
type QuestionService struct {
	DB      *gorm.DB
	Gate    *OwnershipGate
	Checker moderation.Checker

	// TitleMaxLen caps stored titles by rune length. Zero disables the cap.
	TitleMaxLen int
}

// NewQuestionService wires a service over db with a title cap of 255 runes,
// matching the column width.
func NewQuestionService(db *gorm.DB, checker moderation.Checker) *QuestionService {
	if checker == nil {
		checker = moderation.Noop{}
	}
	return &QuestionService{
		DB:          db,
		Gate:        &OwnershipGate{DB: db},
		Checker:     checker,
		TitleMaxLen: 255,
	}
}

func (s *QuestionService) tracer() trace.Tracer { return otel.Tracer("services/QuestionService") }

// List returns a window of all questions in creation order.
func (s *QuestionService) List(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	attrs := []attribute.KeyValue{attribute.Int("offset", p.Offset)}
	if p.Limit != nil {
		attrs = append(attrs, attribute.Int("limit", *p.Limit))
	}
	ctx, span := s.tracer().Start(ctx, "List", trace.WithAttributes(attrs...))
	defer span.End()

	return repo.ListQuestions(ctx, s.DB, p)
}

// Get returns question id.
func (s *QuestionService) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	ctx, span := s.tracer().Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("question.id", int64(id))),
	)
	defer span.End()

	return repo.GetQuestion(ctx, s.DB, id)
}

// Create stores a new question owned by account.
func (s *QuestionService) Create(ctx context.Context, account domain.AccountID, in domain.NewQuestion) (*domain.Question, error) {
	ctx, span := s.tracer().Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("account.id", int64(account))),
	)
	defer span.End()

	clean, err := s.prepare(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return repo.CreateQuestion(ctx, s.DB, clean, account)
}

// Update replaces title, content, and tags of question id. Only the owner may
// update; anyone else gets apperr.Unauthorized and nothing is written.
func (s *QuestionService) Update(ctx context.Context, account domain.AccountID, id domain.QuestionID, in domain.NewQuestion) (*domain.Question, error) {
	ctx, span := s.tracer().Start(ctx, "Update",
		trace.WithAttributes(
			attribute.Int64("question.id", int64(id)),
			attribute.Int64("account.id", int64(account)),
		),
	)
	defer span.End()

	if err := s.Gate.RequireQuestionOwner(ctx, id, account); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	clean, err := s.prepare(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return repo.UpdateQuestion(ctx, s.DB, clean, id, account)
}

// Delete removes question id and all its answers. Only the owner may delete.
func (s *QuestionService) Delete(ctx context.Context, account domain.AccountID, id domain.QuestionID) error {
	ctx, span := s.tracer().Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.Int64("question.id", int64(id)),
			attribute.Int64("account.id", int64(account)),
		),
	)
	defer span.End()

	if err := s.Gate.RequireQuestionOwner(ctx, id, account); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return repo.DeleteQuestion(ctx, s.DB, id, account)
}

// prepare normalizes the input, rejects blank fields, and censors title and
// content concurrently.
func (s *QuestionService) prepare(ctx context.Context, in domain.NewQuestion) (domain.NewQuestion, error) {
	title := normalizeTitle(in.Title)
	content := normalizeBody(in.Content)
	if title == "" || content == "" {
		return domain.NewQuestion{}, apperr.MissingParameters()
	}
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(title) > s.TitleMaxLen {
		title = string([]rune(title)[:s.TitleMaxLen])
	}

	title, content, err := censorPair(ctx, s.Checker, title, content)
	if err != nil {
		return domain.NewQuestion{}, err
	}
	return domain.NewQuestion{
		Title:   title,
		Content: content,
		Tags:    normalizeTags(in.Tags),
	}, nil
}
