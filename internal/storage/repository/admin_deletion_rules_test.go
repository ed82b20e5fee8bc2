package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

func TestCheckDeletionRules(t *testing.T) {
	tests := []struct {
		name           string
		requesterLevel models.AccessLevel
		targetLevel    models.AccessLevel
		sameAccount    bool
		adminCount     int
		wantCode       domerr.Code
		wantErr        bool
	}{
		{
			name:           "admin deletes employee",
			requesterLevel: models.AccessAdministrator,
			targetLevel:    models.AccessEmployee,
			adminCount:     1,
			wantErr:        false,
		},
		{
			name:           "admin deletes another admin with two admins left",
			requesterLevel: models.AccessAdministrator,
			targetLevel:    models.AccessAdministrator,
			adminCount:     2,
			wantErr:        false,
		},
		{
			name:           "admin deletes the last other admin",
			requesterLevel: models.AccessAdministrator,
			targetLevel:    models.AccessAdministrator,
			adminCount:     1,
			wantCode:       domerr.CodeBadRequest,
			wantErr:        true,
		},
		{
			name:           "admin self-deletion with a second admin",
			requesterLevel: models.AccessAdministrator,
			targetLevel:    models.AccessAdministrator,
			sameAccount:    true,
			adminCount:     2,
			wantErr:        false,
		},
		{
			name:           "lone admin self-deletion",
			requesterLevel: models.AccessAdministrator,
			targetLevel:    models.AccessAdministrator,
			sameAccount:    true,
			adminCount:     1,
			wantCode:       domerr.CodeBadRequest,
			wantErr:        true,
		},
		{
			name:           "super admin deletes admin regardless of count",
			requesterLevel: models.AccessSuperAdmin,
			targetLevel:    models.AccessAdministrator,
			adminCount:     2,
			wantErr:        false,
		},
		{
			name:           "super admin self-deletion is rejected",
			requesterLevel: models.AccessSuperAdmin,
			targetLevel:    models.AccessSuperAdmin,
			sameAccount:    true,
			adminCount:     5,
			wantCode:       domerr.CodeForbidden,
			wantErr:        true,
		},
		{
			name:           "super admin target is untouchable",
			requesterLevel: models.AccessAdministrator,
			targetLevel:    models.AccessSuperAdmin,
			adminCount:     5,
			wantCode:       domerr.CodeForbidden,
			wantErr:        true,
		},
		{
			name:           "employee requester is forbidden",
			requesterLevel: models.AccessEmployee,
			targetLevel:    models.AccessEmployee,
			adminCount:     5,
			wantCode:       domerr.CodeForbidden,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDeletionRules(tt.requesterLevel, tt.targetLevel, tt.sameAccount, tt.adminCount)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, domerr.CodeOf(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
