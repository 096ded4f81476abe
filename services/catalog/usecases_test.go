package main

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository para testes que não precisam de banco real
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func upsertRequest(keys []string) UpsertProductRequest {
	return UpsertProductRequest{
		Title:            "Keyboard",
		Description:      "Mechanical",
		Price:            decimal.NewFromFloat(59.90),
		Stock:            10,
		MaxOrderQuantity: 3,
		ImageKeys:        keys,
	}
}

func TestCreateProduct_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()

	mockStore.On("Exists", ctx, "img-1.jpg").Return(true, nil)
	mockStore.On("Exists", ctx, "img-2.jpg").Return(true, nil)
	mockRepo.On("CreateProduct", ctx, mock.Anything).Return(nil)

	// Act
	product, err := useCase.CreateProduct(ctx, upsertRequest([]string{"img-1.jpg", "img-2.jpg"}))

	// Assert: commit bem-sucedido, delete nunca é chamado
	assert.NoError(t, err)
	assert.Equal(t, []string{"img-1.jpg", "img-2.jpg"}, product.ImageKeys)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCreateProduct_CommitFailureCompensatesAssets(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")

	mockStore.On("Exists", ctx, "img-1.jpg").Return(true, nil)
	mockStore.On("Exists", ctx, "img-2.jpg").Return(true, nil)
	mockRepo.On("CreateProduct", ctx, mock.Anything).Return(dbErr)
	mockStore.On("Delete", mock.Anything, []string{"img-1.jpg", "img-2.jpg"}).Return(nil).Once()

	// Act
	product, err := useCase.CreateProduct(ctx, upsertRequest([]string{"img-1.jpg", "img-2.jpg"}))

	// Assert: os dois assets são removidos exatamente uma vez e o erro
	// original chega ao caller
	assert.Nil(t, product)
	assert.ErrorIs(t, err, dbErr)
	mockStore.AssertNumberOfCalls(t, "Delete", 1)
	mockStore.AssertExpectations(t)
}

func TestCreateProduct_CleanupFailureDoesNotMaskOriginalError(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")

	mockStore.On("Exists", ctx, "img-1.jpg").Return(true, nil)
	mockRepo.On("CreateProduct", ctx, mock.Anything).Return(dbErr)
	mockStore.On("Delete", mock.Anything, mock.Anything).Return(errors.New("store unavailable"))

	// Act
	_, err := useCase.CreateProduct(ctx, upsertRequest([]string{"img-1.jpg"}))

	// Assert
	assert.ErrorIs(t, err, dbErr)
}

func TestCreateProduct_MissingAsset(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()

	mockStore.On("Exists", ctx, "img-1.jpg").Return(true, nil)
	mockStore.On("Exists", ctx, "img-missing.jpg").Return(false, nil)
	mockStore.On("Delete", mock.Anything, []string{"img-1.jpg", "img-missing.jpg"}).Return(nil)

	// Act
	_, err := useCase.CreateProduct(ctx, upsertRequest([]string{"img-1.jpg", "img-missing.jpg"}))

	// Assert
	assert.ErrorIs(t, err, ErrAssetMissing)
	mockRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestUpdateProduct_ReplacedAssetsDeletedOnlyAfterCommit(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()

	existing := &Product{
		ID:        1,
		Title:     "Keyboard",
		ImageKeys: []string{"old-1.jpg", "shared.jpg"},
	}
	mockRepo.On("GetProduct", ctx, int64(1)).Return(existing, nil)
	mockStore.On("Exists", ctx, "new-1.jpg").Return(true, nil)
	mockStore.On("Exists", ctx, "shared.jpg").Return(true, nil)
	mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *Product) bool {
		return len(p.ImageKeys) == 2 && p.ImageKeys[0] == "new-1.jpg"
	})).Return(nil)
	// Só a chave substituída é removida, e só depois do commit
	mockStore.On("Delete", ctx, []string{"old-1.jpg"}).Return(nil).Once()

	// Act
	product, err := useCase.UpdateProduct(ctx, 1, upsertRequest([]string{"new-1.jpg", "shared.jpg"}))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"new-1.jpg", "shared.jpg"}, product.ImageKeys)
	mockStore.AssertExpectations(t)
}

func TestUpdateProduct_CommitFailurePreservesOldAssets(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	existing := &Product{ID: 1, Title: "Keyboard", ImageKeys: []string{"old-1.jpg"}}
	mockRepo.On("GetProduct", ctx, int64(1)).Return(existing, nil)
	mockStore.On("Exists", ctx, "new-1.jpg").Return(true, nil)
	mockRepo.On("UpdateProduct", ctx, mock.Anything).Return(dbErr)
	// Compensação remove só as chaves novas; as antigas ficam intactas
	mockStore.On("Delete", mock.Anything, []string{"new-1.jpg"}).Return(nil).Once()

	// Act
	_, err := useCase.UpdateProduct(ctx, 1, upsertRequest([]string{"new-1.jpg"}))

	// Assert
	assert.ErrorIs(t, err, dbErr)
	mockStore.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, []string{"old-1.jpg"})
}

func TestUpdateProduct_KeepsExistingAssetsWhenNoneSent(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()

	existing := &Product{ID: 1, Title: "Keyboard", ImageKeys: []string{"old-1.jpg"}}
	mockRepo.On("GetProduct", ctx, int64(1)).Return(existing, nil)
	mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *Product) bool {
		return len(p.ImageKeys) == 1 && p.ImageKeys[0] == "old-1.jpg"
	})).Return(nil)

	req := upsertRequest(nil)

	// Act
	product, err := useCase.UpdateProduct(ctx, 1, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"old-1.jpg"}, product.ImageKeys)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	mockStore := new(MockAssetStore)
	useCase := NewCatalogUseCase(mockRepo, mockStore)
	ctx := context.Background()

	mockRepo.On("GetProduct", ctx, int64(99)).Return(nil, ErrProductNotFound)

	// Act
	_, err := useCase.UpdateProduct(ctx, 99, upsertRequest(nil))

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReplacedKeys(t *testing.T) {
	tests := []struct {
		name     string
		oldKeys  []string
		newKeys  []string
		expected []string
	}{
		{name: "full replacement", oldKeys: []string{"a", "b"}, newKeys: []string{"c"}, expected: []string{"a", "b"}},
		{name: "partial overlap", oldKeys: []string{"a", "b"}, newKeys: []string{"b", "c"}, expected: []string{"a"}},
		{name: "no old keys", oldKeys: nil, newKeys: []string{"a"}, expected: nil},
		{name: "identical sets", oldKeys: []string{"a"}, newKeys: []string{"a"}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, replacedKeys(tt.oldKeys, tt.newKeys))
		})
	}
}
