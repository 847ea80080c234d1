// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/internal/platform/apperr"
	"github.com/taibuivan/portal/internal/upstream/upstreamtest"
	"github.com/taibuivan/portal/internal/users"
	"github.com/taibuivan/portal/pkg/pointer"
)

func newService(t *testing.T) (*users.Service, *upstreamtest.Server) {
	t.Helper()
	fake := upstreamtest.New(t)
	return users.NewService(fake.Client(t)), fake
}

func TestList_Filter(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter string
		want   []int
	}{
		{"no_filter", "", []int{1, 2, 3}},
		{"name_case_insensitive", "ERVIN", []int{2}},
		{"email_substring", "yesenia", []int{3}},
		{"surrounding_space", "  leanne ", []int{1}},
		{"no_match", "zzz", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := service.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]int, 0, len(list))
			for _, user := range list {
				ids = append(ids, user.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGet(t *testing.T) {
	service, _ := newService(t)

	user, err := service.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, users.User{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"}, *user)

	_, err = service.Get(context.Background(), "404")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestCreate(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), users.CreateInput{Name: "New Person", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "New Person", created.Name)

	_, err = service.Create(context.Background(), users.CreateInput{Name: "", Email: "bad"})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Len(t, appError.Details, 2)
}

func TestUpdate_Partial(t *testing.T) {
	service, _ := newService(t)

	updated, err := service.Update(context.Background(), "1", users.UpdateInput{Name: pointer.To("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Sincere@april.biz", updated.Email)

	_, err = service.Update(context.Background(), "1", users.UpdateInput{Email: pointer.To("nope")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Update(context.Background(), "99", users.UpdateInput{Name: pointer.To("Ghost")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestCreateAndUpdate_LengthLimits(t *testing.T) {
	service, _ := newService(t)
	longName := strings.Repeat("n", 101)
	longEmail := strings.Repeat("e", 250) + "@example.com"

	_, err := service.Create(context.Background(), users.CreateInput{Name: longName, Email: longEmail})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Equal(t, []apperr.FieldError{
		{Field: users.FieldName, Message: "Maximum 100 characters"},
		{Field: users.FieldEmail, Message: "Maximum 254 characters"},
	}, appError.Details)

	_, err = service.Update(context.Background(), "1", users.UpdateInput{Name: pointer.To(longName)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	updated, err := service.Update(context.Background(), "1", users.UpdateInput{Name: pointer.To(strings.Repeat("n", 100))})
	require.NoError(t, err)
	assert.Len(t, updated.Name, 100)
}

func TestDelete(t *testing.T) {
	service, _ := newService(t)

	ack, err := service.Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, ack.OK)
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	service, fake := newService(t)
	fake.FailWith.Store(http.StatusInternalServerError)

	_, err := service.List(context.Background(), "")
	assert.True(t, apperr.HasCode(err, apperr.CodeBadGateway))

	_, err = service.Delete(context.Background(), "1")
	assert.True(t, apperr.HasCode(err, apperr.CodeBadGateway))
}
