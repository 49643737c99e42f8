package persistence

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/config"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/repository"
	"github.com/spec-kit/employee-directory/internal/security/fieldcrypt"
)

// SeedRootAdmin bootstraps the manager-less administrator record on first
// start. It is idempotent: once any admin exists, it does nothing.
func SeedRootAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig,
	cipher *fieldcrypt.Cipher, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping root admin seed")
		return nil
	}

	var adminExists bool
	if err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE role=$1)`, domain.RoleAdmin,
	).Scan(&adminExists); err != nil {
		return err
	}
	if adminExists {
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
	if err != nil {
		return err
	}
	documentEncrypted, err := cipher.Encrypt(cfg.AdminDocument)
	if err != nil {
		return err
	}

	admin := &domain.Employee{
		FirstName:           cfg.AdminFirstName,
		LastName:            cfg.AdminLastName,
		Email:               cfg.AdminEmail,
		DocumentNumber:      documentEncrypted,
		DocumentNumberIndex: fieldcrypt.IndexHash(cfg.AdminDocument),
		PasswordHash:        passwordHash,
		BirthDate:           time.Now().UTC().AddDate(-30, 0, 0),
		Role:                domain.RoleAdmin,
		ManagerID:           nil,
		Phones: []domain.Phone{
			{Number: "+5500000000000", Type: domain.PhoneTypeMobile},
		},
	}

	if err := repository.NewEmployeeRepository(pool).Add(ctx, admin); err != nil {
		return err
	}

	logger.Info("seeded root admin", zap.Int64("employee_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
