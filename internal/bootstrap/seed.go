package bootstrap

import (
	"context"
	"errors"
	"log"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/apperror"
)

// SeedDemoUsers creates one teacher and one student account for local
// development. Existing accounts are left alone.
func SeedDemoUsers(ctx context.Context, auth service.AuthService) error {
	demo := []dto.RegisterInput{
		{
			Name:     "Demo Teacher",
			Email:    "teacher@anusasana.dev",
			Password: "teacher123",
			Role:     "teacher",
			College:  "Demo College",
			UniqueID: "TCH-0001",
		},
		{
			Name:     "Demo Student",
			Email:    "student@anusasana.dev",
			Password: "student123",
			Role:     "student",
			College:  "Demo College",
			UniqueID: "STU-0001",
		},
	}

	for _, input := range demo {
		_, err := auth.Register(ctx, input)
		if err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				continue
			}
			return err
		}
		log.Printf("seeded %s account: %s / %s", input.Role, input.Email, input.Password)
	}

	return nil
}
