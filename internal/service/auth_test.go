package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/repository/memory"
	"github.com/anusasana/portal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() AuthService {
	repos := memory.NewSet()
	return NewAuthService(repos.Users, "test-secret", time.Hour)
}

func registerInput(email string) dto.RegisterInput {
	return dto.RegisterInput{
		Name:     "Asha Rao",
		Email:    email,
		Password: "s3cret-pw",
		Role:     "student",
		College:  "Hillside College",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and role-prefixed uniqueId", func(t *testing.T) {
		svc := newAuthService()

		user, err := svc.Register(ctx, registerInput("asha@example.com"))
		require.NoError(t, err)

		assert.False(t, user.ID.IsZero())
		assert.True(t, strings.HasPrefix(user.UniqueID, "STU-"), "uniqueId %q should carry the student prefix", user.UniqueID)
		assert.Len(t, user.UniqueID, len("STU-0000"))
		assert.NotEqual(t, "s3cret-pw", user.PasswordHash)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("teacher prefix", func(t *testing.T) {
		svc := newAuthService()

		input := registerInput("rao@example.com")
		input.Role = "teacher"
		user, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(user.UniqueID, "TCH-"))
	})

	t.Run("keeps a caller-supplied uniqueId", func(t *testing.T) {
		svc := newAuthService()

		input := registerInput("asha@example.com")
		input.UniqueID = "STU-9999"
		user, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "STU-9999", user.UniqueID)
	})

	t.Run("duplicate email conflicts and leaves the first record intact", func(t *testing.T) {
		svc := newAuthService()

		first, err := svc.Register(ctx, registerInput("asha@example.com"))
		require.NoError(t, err)

		second := registerInput("asha@example.com")
		second.Name = "Imposter"
		_, err = svc.Register(ctx, second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrConflict))

		// The first registration still logs in.
		auth, err := svc.Login(ctx, dto.LoginInput{Email: "asha@example.com", Password: "s3cret-pw"})
		require.NoError(t, err)
		assert.Equal(t, first.ID.Hex(), auth.User.ID)
		assert.Equal(t, "Asha Rao", auth.User.Name)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		svc := newAuthService()

		input := registerInput("asha@example.com")
		input.College = "   "
		_, err := svc.Register(ctx, input)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := newAuthService()

		input := registerInput("asha@example.com")
		input.Role = "admin"
		_, err := svc.Register(ctx, input)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Register(ctx, registerInput("asha@example.com"))
	require.NoError(t, err)

	t.Run("success returns token bound to the user and no hash", func(t *testing.T) {
		auth, err := svc.Login(ctx, dto.LoginInput{Email: "asha@example.com", Password: "s3cret-pw"})
		require.NoError(t, err)

		assert.NotEmpty(t, auth.Token)
		assert.Equal(t, "Bearer", auth.TokenType)
		assert.Equal(t, user.ID.Hex(), auth.User.ID)
	})

	t.Run("wrong email and wrong password yield the same message", func(t *testing.T) {
		_, errEmail := svc.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "s3cret-pw"})
		_, errPassword := svc.Login(ctx, dto.LoginInput{Email: "asha@example.com", Password: "wrong"})

		require.Error(t, errEmail)
		require.Error(t, errPassword)
		assert.Equal(t, errEmail.Error(), errPassword.Error())
		assert.True(t, errors.Is(errEmail, apperror.ErrInvalidCredentials))
		assert.True(t, errors.Is(errPassword, apperror.ErrInvalidCredentials))
	})
}

func TestLookupByUniqueID(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	// A teacher deliberately squatting on a student-looking ID: the role
	// filter must keep the namespaces apart.
	teacher := registerInput("t@example.com")
	teacher.Role = "teacher"
	teacher.UniqueID = "STU-0001"
	_, err := svc.Register(ctx, teacher)
	require.NoError(t, err)

	_, err = svc.LookupByUniqueID(ctx, "STU-0001", "student")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	student := registerInput("s@example.com")
	student.UniqueID = "STU-0001"
	_, err = svc.Register(ctx, student)
	require.NoError(t, err)

	found, err := svc.LookupByUniqueID(ctx, "STU-0001", "student")
	require.NoError(t, err)
	assert.Equal(t, "s@example.com", found.Email)
	assert.Equal(t, "student", found.Role)
}

func TestListByRole(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, registerInput("s@example.com"))
	require.NoError(t, err)

	teacher := registerInput("t@example.com")
	teacher.Role = "teacher"
	_, err = svc.Register(ctx, teacher)
	require.NoError(t, err)

	students, err := svc.ListByRole(ctx, "student")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "s@example.com", students[0].Email)
}
