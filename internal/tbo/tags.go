package tbo

import (
	"context"
	"fmt"

	"tbo-go/internal/model"
)

// CreateTag adds a tag to the catalog. Tag names are unique; a repeated name
// fails with ErrConstraintViolation.
func (s *TBOService) CreateTag(ctx context.Context, input model.Tag) (*model.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	t := s.materializeTag(input)
	if err := validateTag(&t); err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	if err := s.database.InsertTag(ctx, &t); err != nil {
		return nil, fmt.Errorf("creating tag %q: %w", t.Name, ensureKind("inserting tag", err))
	}

	s.logger.Info("tag created", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (s *TBOService) materializeTag(input model.Tag) model.Tag {
	t := input
	if t.ID == "" {
		t.ID = s.idgen.New()
	}
	if t.Color == "" {
		t.Color = TagColor
	}
	return t
}

// GetAllTags returns the tag catalog. Bookmarks may carry tag names that are
// not in it.
func (s *TBOService) GetAllTags(ctx context.Context) ([]model.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	tags, err := s.database.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", ensureKind("listing tags", err))
	}
	return tags, nil
}
