package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"channelengine-sync/internal/channelengine"
	"channelengine-sync/internal/domain"
	"channelengine-sync/internal/repository/settings"
	"github.com/sirupsen/logrus"
)

// Result is what every sync operation reports, success or not. It is also
// the JSON body the admin sync page consumes.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	msgSyncSuccessful   = "Product synchronization successful!"
	msgUnknownError     = "Unknown error"
	msgNoResponse       = "ChannelEngine did not return a valid response"
	msgNotConfigured    = "ChannelEngine account is not configured; log in first"
	msgCatalogReadError = "Could not read the product catalog"
)

type productSource interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type productSender interface {
	SendProducts(ctx context.Context, accountName, apiKey string, products []channelengine.ProductPayload) (*channelengine.Response, error)
}

// Service maps catalog products and pushes them to ChannelEngine in a single
// request per sync. No retries, no batching.
type Service struct {
	products productSource
	settings settings.Store
	api      productSender
	logger   *logrus.Logger
}

func New(products productSource, store settings.Store, api productSender, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{products: products, settings: store, api: api, logger: logger}
}

// SyncAll pushes the whole catalog in one request, preserving source order.
func (s *Service) SyncAll(ctx context.Context) Result {
	accountName, apiKey, err := s.credentials(ctx)
	if err != nil {
		return Result{Success: false, Message: msgNotConfigured}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("sync: list products")
		return Result{Success: false, Message: msgCatalogReadError}
	}

	resp, err := s.api.SendProducts(ctx, accountName, apiKey, channelengine.ToPayloads(products))
	if err != nil {
		s.logger.WithError(err).WithField("count", len(products)).Error("sync: send products")
		return Result{Success: false, Message: msgNoResponse}
	}
	return s.interpret(resp)
}

// SyncOne pushes a single product as a one-element list. An unknown id fails
// before any network call.
func (s *Service) SyncOne(ctx context.Context, id int64) Result {
	accountName, apiKey, err := s.credentials(ctx)
	if err != nil {
		return Result{Success: false, Message: msgNotConfigured}
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{Success: false, Message: fmt.Sprintf("Product with ID %d not found", id)}
		}
		s.logger.WithField("id", id).WithError(err).Error("sync: get product")
		return Result{Success: false, Message: msgCatalogReadError}
	}

	resp, err := s.api.SendProducts(ctx, accountName, apiKey, []channelengine.ProductPayload{channelengine.ToPayload(*p)})
	if err != nil {
		s.logger.WithField("id", id).WithError(err).Error("sync: send product")
		return Result{Success: false, Message: msgNoResponse}
	}
	return s.interpret(resp)
}

func (s *Service) credentials(ctx context.Context) (string, string, error) {
	accountName, err := s.settings.Get(ctx, settings.KeyAccountName)
	if err != nil {
		return "", "", err
	}
	apiKey, err := s.settings.Get(ctx, settings.KeyAPIKey)
	if err != nil {
		return "", "", err
	}
	if accountName == "" || apiKey == "" {
		return "", "", domain.ErrNotConfigured
	}
	return accountName, apiKey, nil
}

// interpret maps the remote envelope to a Result. A well-formed rejection
// carries the remote Message verbatim; an absent Message degrades to a
// generic string.
func (s *Service) interpret(resp *channelengine.Response) Result {
	if resp == nil {
		return Result{Success: false, Message: msgNoResponse}
	}
	if resp.StatusCode == http.StatusOK && resp.Success {
		return Result{Success: true, Message: msgSyncSuccessful}
	}
	message := resp.Message
	if message == "" {
		message = msgUnknownError
	}
	return Result{Success: false, Message: message}
}
