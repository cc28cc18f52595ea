package seeders

import (
	"fmt"

	"tour-booking/constants"
	"tour-booking/logger"
	"tour-booking/models/tour"
	"tour-booking/models/user"

	"gorm.io/gorm"
)

// Fixed UUIDs so that dev tokens survive a reseed
const (
	DemoAdminUUID    = "0b6c1d1e-6f43-4b8e-9a55-1d7c0c0a0001"
	DemoOperatorUUID = "0b6c1d1e-6f43-4b8e-9a55-1d7c0c0a0002"
	DemoCustomerUUID = "0b6c1d1e-6f43-4b8e-9a55-1d7c0c0a0003"
)

func intPtr(v int) *int {
	return &v
}

// DemoUsers returns the admin, operator and customer accounts
func DemoUsers() []user.User {
	return []user.User{
		{ID: 1, Uuid: DemoAdminUUID, Name: "Platform Admin", Email: "admin@tour-booking.local", Role: constants.RoleAdmin},
		{ID: 2, Uuid: DemoOperatorUUID, Name: "Sundarbans Trails", Email: "ops@sundarbans-trails.local", Role: constants.RoleOperator},
		{ID: 3, Uuid: DemoCustomerUUID, Name: "Demo Traveller", Email: "traveller@tour-booking.local", Role: constants.RoleUser},
	}
}

// DemoOperatorProfiles returns the approved profile of the demo operator
func DemoOperatorProfiles() []user.OperatorProfile {
	return []user.OperatorProfile{
		{ID: 1, UserID: 2, CompanyName: "Sundarbans Trails Ltd.", ApprovalStatus: constants.ApprovalApproved},
	}
}

// DemoTours returns the demo operator's tours, one of them inactive
func DemoTours() []tour.Tour {
	profile := DemoOperatorProfiles()[0]
	return []tour.Tour{
		{ID: 1, OperatorProfileID: profile.ID, OperatorProfile: profile, Title: "Sundarbans 3-Day Mangrove Cruise", IsActive: true, MaxCapacity: intPtr(12), BasePrice: 4500000},
		{ID: 2, OperatorProfileID: profile.ID, OperatorProfile: profile, Title: "Srimangal Tea Garden Walk", IsActive: true, BasePrice: 850000},
		{ID: 3, OperatorProfileID: profile.ID, OperatorProfile: profile, Title: "Saint Martin Island Weekend", IsActive: false, MaxCapacity: intPtr(8), BasePrice: 2200000},
	}
}

// MemorySeeder is implemented by stores that accept seed data directly
type MemorySeeder interface {
	AddUser(u user.User)
	AddTour(t tour.Tour)
}

// SeedMemory loads the demo data into an in-process store
func SeedMemory(store MemorySeeder) {
	for _, u := range DemoUsers() {
		store.AddUser(u)
	}
	for _, t := range DemoTours() {
		store.AddTour(t)
	}
	logger.Success("🌱 Demo data loaded into memory store")
}

// SeedDemoData inserts the demo data once, keyed by email and title
func SeedDemoData(db *gorm.DB) error {
	logger.Info("🔍 Checking demo data...")

	return db.Transaction(func(tx *gorm.DB) error {
		userIDs := make(map[uint]uint)
		for _, u := range DemoUsers() {
			seedID := u.ID
			u.ID = 0
			if err := tx.Where(user.User{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
			userIDs[seedID] = u.ID
		}

		profileIDs := make(map[uint]uint)
		for _, p := range DemoOperatorProfiles() {
			seedID := p.ID
			p.ID = 0
			p.UserID = userIDs[p.UserID]
			if err := tx.Where(user.OperatorProfile{UserID: p.UserID}).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("failed to seed operator profile %s: %w", p.CompanyName, err)
			}
			profileIDs[seedID] = p.ID
		}

		for _, t := range DemoTours() {
			t.ID = 0
			t.OperatorProfileID = profileIDs[t.OperatorProfileID]
			t.OperatorProfile = user.OperatorProfile{}
			err := tx.Omit("OperatorProfile").
				Where(tour.Tour{Title: t.Title, OperatorProfileID: t.OperatorProfileID}).
				FirstOrCreate(&t).Error
			if err != nil {
				return fmt.Errorf("failed to seed tour %s: %w", t.Title, err)
			}
		}

		logger.Success("✅ Demo data is in place")
		return nil
	})
}
