package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/models"
)

const (
	documentsCacheKey = "documents"
	templatesCacheKey = "contract-templates"

	listCacheTTL = 5 * time.Minute
)

// AdminService manages knowledge-base documents and contract templates.
// Lists are cached until invalidated; InvalidateDocuments and
// InvalidateTemplates are meant to be registered as upload queue hooks.
type AdminService interface {
	Documents(ctx context.Context) ([]models.KnowledgeDocument, error)
	DeleteDocument(ctx context.Context, sourceFile string) error
	ContractTemplates(ctx context.Context) ([]models.ContractTemplate, error)
	DeleteContractTemplate(ctx context.Context, id int64) error
	SendContractTemplate(ctx context.Context, id int64) error

	InvalidateDocuments()
	InvalidateTemplates()
}

type adminService struct {
	client client.Client
	lists  *cache.Cache
}

func NewAdminService(c client.Client) AdminService {
	return &adminService{
		client: c,
		lists:  cache.New(listCacheTTL, 2*listCacheTTL),
	}
}

func (a *adminService) Documents(ctx context.Context) ([]models.KnowledgeDocument, error) {
	if v, ok := a.lists.Get(documentsCacheKey); ok {
		return v.([]models.KnowledgeDocument), nil
	}
	var out []models.KnowledgeDocument
	if err := a.client.Do(ctx, http.MethodGet, "/admin/documents", nil, &out); err != nil {
		return nil, err
	}
	a.lists.SetDefault(documentsCacheKey, out)
	return out, nil
}

func (a *adminService) DeleteDocument(ctx context.Context, sourceFile string) error {
	path := "/admin/documents/" + url.PathEscape(sourceFile)
	if err := a.client.Do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	a.InvalidateDocuments()
	return nil
}

func (a *adminService) ContractTemplates(ctx context.Context) ([]models.ContractTemplate, error) {
	if v, ok := a.lists.Get(templatesCacheKey); ok {
		return v.([]models.ContractTemplate), nil
	}
	var out []models.ContractTemplate
	if err := a.client.Do(ctx, http.MethodGet, "/admin/contract-templates", nil, &out); err != nil {
		return nil, err
	}
	a.lists.SetDefault(templatesCacheKey, out)
	return out, nil
}

func (a *adminService) DeleteContractTemplate(ctx context.Context, id int64) error {
	var out models.StatusResponse
	if err := a.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/admin/contract-templates/%d", id), nil, &out); err != nil {
		return err
	}
	a.InvalidateTemplates()
	return nil
}

// SendContractTemplate asks the bot to send the template file to the
// current user.
func (a *adminService) SendContractTemplate(ctx context.Context, id int64) error {
	return a.client.Do(ctx, http.MethodPost, fmt.Sprintf("/admin/contract-templates/%d/send", id), nil, nil)
}

func (a *adminService) InvalidateDocuments() { a.lists.Delete(documentsCacheKey) }

func (a *adminService) InvalidateTemplates() { a.lists.Delete(templatesCacheKey) }
