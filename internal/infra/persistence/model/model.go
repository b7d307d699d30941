package model

// All returns every model in dependency order, for migrations.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshSessionModel{},
		&ProjectModel{},
		&ProjectMembershipModel{},
		&TeamModel{},
		&TeamMembershipModel{},
		&TaskModel{},
	}
}
