package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAssetStore simula o object store
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func TestAssetCompensator_CompensateDeletesTrackedKeysOnce(t *testing.T) {
	// Arrange
	mockStore := new(MockAssetStore)
	comp := NewAssetCompensator(mockStore)
	comp.Track("img-1.jpg", "img-2.jpg")

	mockStore.On("Delete", mock.Anything, []string{"img-1.jpg", "img-2.jpg"}).Return(nil).Once()

	// Act: commit falhou, a compensação remove os dois assets
	comp.Compensate(context.Background())

	// Assert
	mockStore.AssertExpectations(t)
	mockStore.AssertNumberOfCalls(t, "Delete", 1)
}

func TestAssetCompensator_CommitPreventsDeletion(t *testing.T) {
	// Arrange
	mockStore := new(MockAssetStore)
	comp := NewAssetCompensator(mockStore)
	comp.Track("img-1.jpg", "img-2.jpg")

	// Act: commit bem-sucedido, depois alguém ainda chama Compensate
	comp.Commit()
	comp.Compensate(context.Background())

	// Assert: delete nunca é chamado para assets comitados
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAssetCompensator_NothingTracked(t *testing.T) {
	// Arrange
	mockStore := new(MockAssetStore)
	comp := NewAssetCompensator(mockStore)

	// Act
	comp.Compensate(context.Background())

	// Assert
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAssetCompensator_DeleteFailureIsSwallowed(t *testing.T) {
	// Arrange
	mockStore := new(MockAssetStore)
	comp := NewAssetCompensator(mockStore)
	comp.Track("img-1.jpg")

	mockStore.On("Delete", mock.Anything, []string{"img-1.jpg"}).Return(errors.New("store unavailable"))

	// Act & Assert: falha de limpeza é logada, nunca propagada
	assert.NotPanics(t, func() {
		comp.Compensate(context.Background())
	})
	mockStore.AssertExpectations(t)
}

func TestAssetCompensator_CompensateRunsAfterCallerCancellation(t *testing.T) {
	// Arrange
	mockStore := new(MockAssetStore)
	comp := NewAssetCompensator(mockStore)
	comp.Track("img-1.jpg")

	var receivedCtx context.Context
	mockStore.On("Delete", mock.Anything, []string{"img-1.jpg"}).
		Run(func(args mock.Arguments) {
			receivedCtx = args.Get(0).(context.Context)
		}).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // o caller desistiu no meio da operação

	// Act
	comp.Compensate(ctx)

	// Assert: a limpeza recebe um contexto próprio, ainda vivo
	mockStore.AssertExpectations(t)
	assert.NoError(t, receivedCtx.Err())
}
