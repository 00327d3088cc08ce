package tbo

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"tbo-go/internal/model"
)

// MaxNameLength bounds folder and tag names.
const MaxNameLength = 200

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func colorRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Match(colorPattern).Error("must be a #RRGGBB color"),
	}
}

func validateBookmark(b *model.Bookmark) error {
	return invalid(validation.ValidateStruct(b,
		validation.Field(&b.ID, validation.Required),
		validation.Field(&b.FolderID, validation.Required),
		validation.Field(&b.Media, validation.Each(validation.By(validateMedia))),
		validation.Field(&b.Tags, validation.Each(validation.Required)),
	))
}

func validateMedia(value interface{}) error {
	m, ok := value.(model.Media)
	if !ok {
		return errors.New("must be a media item")
	}
	return validation.ValidateStruct(&m,
		validation.Field(&m.Type, validation.Required),
		validation.Field(&m.URL, validation.Required),
	)
}

func validateFolder(f *model.Folder) error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.Name, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&f.Color, colorRules()...),
	)
	if err == nil && f.ParentID != nil && *f.ParentID == f.ID {
		err = errors.New("parentId: cannot be the folder itself")
	}
	return invalid(err)
}

func validateTag(t *model.Tag) error {
	return invalid(validation.ValidateStruct(t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&t.Color, colorRules()...),
	))
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
