package repository

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/database"
)

type RoleRepository struct {
	db *database.PostgresDB
}

func NewRoleRepository(db *database.PostgresDB) *RoleRepository {
	return &RoleRepository{db: db}
}

// ListChurchRoles returns all role definitions for a church
func (r *RoleRepository) ListChurchRoles(ctx context.Context, churchID string) ([]domain.Role, error) {
	query := `
		SELECT id, church_id, name, description, is_system_role
		FROM roles
		WHERE church_id = $1
		ORDER BY name
	`

	rows, err := r.db.ReadPool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.ChurchID, &role.Name, &role.Description, &role.IsSystemRole); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

// UserRolesMap returns the userID -> roleIDs mapping for a church
func (r *RoleRepository) UserRolesMap(ctx context.Context, churchID string) (domain.UserRolesMap, error) {
	query := `
		SELECT ur.user_id, ur.role_id
		FROM user_roles ur
		JOIN roles ro ON ro.id = ur.role_id
		WHERE ro.church_id = $1
	`

	rows, err := r.db.ReadPool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}
	defer rows.Close()

	rolesMap := make(domain.UserRolesMap)
	for rows.Next() {
		var userID, roleID string
		if err := rows.Scan(&userID, &roleID); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		rolesMap[userID] = append(rolesMap[userID], roleID)
	}

	return rolesMap, rows.Err()
}

// Assign adds a role to a user. Re-assigning an existing role is a no-op.
func (r *RoleRepository) Assign(ctx context.Context, userID, roleID string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`

	if _, err := r.db.Pool.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// Remove removes a role from a user
func (r *RoleRepository) Remove(ctx context.Context, userID, roleID string) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	if _, err := r.db.Pool.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}
	return nil
}
