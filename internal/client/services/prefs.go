package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/birkaops/birka/internal/client/repositories/metadata"
	"github.com/birkaops/birka/internal/common"
)

// PrefsService stores UI preferences in the local key/value store.
type PrefsService interface {
	// ActiveCompany returns the chosen company; ok is false when none is set.
	ActiveCompany(ctx context.Context) (id int64, ok bool, err error)
	SetActiveCompany(ctx context.Context, id int64) error
}

type prefsService struct {
	repo metadata.Repository
}

func NewPrefsService(repo metadata.Repository) PrefsService {
	return &prefsService{repo: repo}
}

func (p *prefsService) ActiveCompany(ctx context.Context) (int64, bool, error) {
	s, err := metadata.GetString(ctx, p.repo, common.ActiveCompanyKey)
	if err != nil || s == "" {
		return 0, false, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("stored company id %q: %w", s, common.ErrorIncorrectInput)
	}
	return id, true, nil
}

func (p *prefsService) SetActiveCompany(ctx context.Context, id int64) error {
	if id <= 0 {
		return common.ErrorIncorrectInput
	}
	return p.repo.Set(ctx, common.ActiveCompanyKey, []byte(strconv.FormatInt(id, 10)))
}
