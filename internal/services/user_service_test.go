package services_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	users := []models.User{{ID: "1", Email: "a@example.com"}, {ID: "2", Email: "b@example.com"}}
	mockRepo.On("List", mock.Anything).Return(users, nil).Once()

	got, err := service.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, users, got)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUserName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", mock.Anything, "1").Return(&models.User{ID: "1", Name: "Old"}, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == "1" && u.Name == "New Name"
	})).Return(nil).Once()

	user, err := service.UpdateUserName(ctx, "1", models.UserUpdateInput{Name: " New Name "})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)

	_, err = service.UpdateUserName(ctx, "1", models.UserUpdateInput{Name: "   "})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, fmt.Errorf("user with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.UpdateUserName(ctx, "99", models.UserUpdateInput{Name: "X"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("Delete", mock.Anything, "1").Return(nil).Once()
	assert.NoError(t, service.DeleteUser(context.Background(), "1"))

	mockRepo.On("Delete", mock.Anything, "99").Return(fmt.Errorf("user with ID 99: %w", repositories.ErrNotFound)).Once()
	assert.ErrorIs(t, service.DeleteUser(context.Background(), "99"), repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
