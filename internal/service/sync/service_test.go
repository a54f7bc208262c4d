package sync

import (
	"context"
	"errors"
	"io"
	"testing"

	"channelengine-sync/internal/channelengine"
	"channelengine-sync/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	list      []domain.Product
	listErr   error
	product   *domain.Product
	getErr    error
	lastGetID int64
}

func (s *stubSource) List(_ context.Context) ([]domain.Product, error) {
	return s.list, s.listErr
}

func (s *stubSource) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	s.lastGetID = id
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.product, nil
}

type stubSender struct {
	resp         *channelengine.Response
	err          error
	calls        int
	lastAccount  string
	lastKey      string
	lastPayloads []channelengine.ProductPayload
}

func (s *stubSender) SendProducts(_ context.Context, accountName, apiKey string, products []channelengine.ProductPayload) (*channelengine.Response, error) {
	s.calls++
	s.lastAccount = accountName
	s.lastKey = apiKey
	s.lastPayloads = products
	return s.resp, s.err
}

type stubStore struct {
	values map[string]string
	getErr error
	setErr error
	sets   map[string]string
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.values[key], nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.sets == nil {
		s.sets = map[string]string{}
	}
	s.sets[key] = value
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func configuredStore() *stubStore {
	return &stubStore{values: map[string]string{
		"ACCOUNT_NAME": "demo",
		"API_KEY":      "abc123",
	}}
}

func TestSyncAllHappyPath(t *testing.T) {
	source := &stubSource{list: []domain.Product{
		{ID: 1, Name: "Mug", Price: 9.99},
		{ID: 2, Name: "Tee", Price: 19.99},
		{ID: 3, Name: "Box", Price: 4.5},
	}}
	sender := &stubSender{resp: &channelengine.Response{StatusCode: 200, Success: true}}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncAll(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Product synchronization successful!", result.Message)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "demo", sender.lastAccount)
	assert.Equal(t, "abc123", sender.lastKey)
	require.Len(t, sender.lastPayloads, 3)
	assert.Equal(t, int64(1), sender.lastPayloads[0].MerchantProductNo)
	assert.Equal(t, int64(2), sender.lastPayloads[1].MerchantProductNo)
	assert.Equal(t, int64(3), sender.lastPayloads[2].MerchantProductNo)
}

func TestSyncAllRemoteRejectionKeepsMessageVerbatim(t *testing.T) {
	source := &stubSource{list: []domain.Product{{ID: 1}}}
	sender := &stubSender{resp: &channelengine.Response{StatusCode: 400, Success: false, Message: "Invalid EAN"}}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncAll(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid EAN", result.Message)
}

func TestSyncAllRejectionWithoutMessage(t *testing.T) {
	source := &stubSource{list: []domain.Product{{ID: 1}}}
	sender := &stubSender{resp: &channelengine.Response{StatusCode: 500, Success: false}}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncAll(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, "Unknown error", result.Message)
}

func TestSyncAllTransportFailure(t *testing.T) {
	source := &stubSource{list: []domain.Product{{ID: 1}}}
	sender := &stubSender{err: errors.New("connection refused")}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncAll(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, "ChannelEngine did not return a valid response", result.Message)
}

func TestSyncAllWithoutCredentials(t *testing.T) {
	sender := &stubSender{}
	svc := New(&stubSource{}, &stubStore{values: map[string]string{}}, sender, testLogger())

	result := svc.SyncAll(context.Background())

	assert.False(t, result.Success)
	assert.Zero(t, sender.calls, "must not call the API without credentials")
}

func TestSyncOneHappyPath(t *testing.T) {
	source := &stubSource{product: &domain.Product{ID: 7, Name: "Mug", Price: 9.99, ImageURL: "x.jpg", Quantity: 3}}
	sender := &stubSender{resp: &channelengine.Response{StatusCode: 200, Success: true}}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncOne(context.Background(), 7)

	assert.True(t, result.Success)
	assert.Equal(t, int64(7), source.lastGetID)
	require.Len(t, sender.lastPayloads, 1)
	assert.Equal(t, int64(7), sender.lastPayloads[0].MerchantProductNo)
	assert.Equal(t, "STANDARD", sender.lastPayloads[0].VatRateType)
}

func TestSyncOneNotFoundSkipsNetwork(t *testing.T) {
	source := &stubSource{getErr: domain.ErrNotFound}
	sender := &stubSender{}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncOne(context.Background(), 42)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "42")
	assert.Zero(t, sender.calls, "must not call the API for a missing product")
}

func TestSyncOneTransportFailure(t *testing.T) {
	source := &stubSource{product: &domain.Product{ID: 7}}
	sender := &stubSender{err: errors.New("timeout")}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncOne(context.Background(), 7)

	assert.False(t, result.Success)
	assert.Equal(t, "ChannelEngine did not return a valid response", result.Message)
}

func TestSyncAllCatalogReadFailure(t *testing.T) {
	source := &stubSource{listErr: errors.New("db down")}
	sender := &stubSender{}
	svc := New(source, configuredStore(), sender, testLogger())

	result := svc.SyncAll(context.Background())

	assert.False(t, result.Success)
	assert.Zero(t, sender.calls)
}
