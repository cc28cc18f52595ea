package account

import (
	"context"
	"errors"

	"tour-booking/constants"
	"tour-booking/models/user"
	"tour-booking/types"

	"gorm.io/gorm"
)

var ErrUnknownUser = errors.New("user not found")

// Resolver turns the subject of an access token into an Actor.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// ResolveActor loads the user by UUID and, for operators, their profile.
func (r *Resolver) ResolveActor(ctx context.Context, userUUID string) (types.Actor, error) {
	var u user.User
	err := r.DB.WithContext(ctx).Where("uuid = ? AND deleted_at IS NULL", userUUID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Actor{}, ErrUnknownUser
	}
	if err != nil {
		return types.Actor{}, err
	}

	actor := types.Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
	if u.Role != constants.RoleOperator {
		return actor, nil
	}

	var profile user.OperatorProfile
	err = r.DB.WithContext(ctx).Where("user_id = ?", u.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// operator login without a profile yet: treated as unapproved
		return actor, nil
	}
	if err != nil {
		return types.Actor{}, err
	}
	actor.OperatorProfileID = &profile.ID
	actor.OperatorApproved = profile.IsApproved()
	return actor, nil
}

// StaticResolver resolves actors from a fixed set of accounts. It backs the
// in-memory development mode.
type StaticResolver struct {
	users    map[string]user.User
	profiles map[uint]user.OperatorProfile
}

func NewStaticResolver(users []user.User, profiles []user.OperatorProfile) *StaticResolver {
	r := &StaticResolver{
		users:    make(map[string]user.User, len(users)),
		profiles: make(map[uint]user.OperatorProfile, len(profiles)),
	}
	for _, u := range users {
		r.users[u.Uuid] = u
	}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *StaticResolver) ResolveActor(ctx context.Context, userUUID string) (types.Actor, error) {
	u, ok := r.users[userUUID]
	if !ok || u.DeletedAt != nil {
		return types.Actor{}, ErrUnknownUser
	}
	actor := types.Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
	if profile, ok := r.profiles[u.ID]; ok && u.Role == constants.RoleOperator {
		id := profile.ID
		actor.OperatorProfileID = &id
		actor.OperatorApproved = profile.IsApproved()
	}
	return actor, nil
}
