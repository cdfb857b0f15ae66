package thread

import (
	"strings"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

// CreateThreadInput holds the parameters for creating a thread.
type CreateThreadInput struct {
	Title   string
	Content string
	Image   *string
}

// Validate checks all fields and collects all errors.
func (i CreateThreadInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > 5000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 5000 characters"})
	}

	if i.Image != nil && len(*i.Image) > 2048 {
		errs = append(errs, domain.FieldError{Field: "image", Message: "max 2048 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateReplyInput holds the parameters for replying to a thread.
type CreateReplyInput struct {
	ThreadID int64
	Content  string
}

// Validate checks all fields and collects all errors.
func (i CreateReplyInput) Validate() error {
	var errs []domain.FieldError

	if i.ThreadID <= 0 {
		errs = append(errs, domain.FieldError{Field: "thread_id", Message: "must be positive"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > 2000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
