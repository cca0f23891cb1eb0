package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"gorm.io/gorm"
)

// ErrAlreadyOnboarded is returned when a user with a profile tries to set up
// another clinic.
var ErrAlreadyOnboarded = errors.New("user already belongs to a clinic")

// Clinics manages the tenant itself and the profiles binding users to it.
type Clinics struct {
	d Deps
}

func (s *Clinics) Get(ctx context.Context, scope gateway.Scope) (model.Clinic, error) {
	if !scope.Valid() {
		return model.Clinic{}, gateway.ErrScopeUnresolved
	}
	var c model.Clinic
	err := s.d.DB.WithContext(ctx).Where("id = ?", scope.ClinicID()).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, gateway.ErrNotFound
	}
	if err != nil {
		return c, s.d.report("get clinic", scope, &gateway.RemoteError{Op: "select", Table: "clinics", Err: err})
	}
	return c, nil
}

func (s *Clinics) Update(ctx context.Context, scope gateway.Scope, req model.UpdateClinicRequest) (model.Clinic, error) {
	if err := validate(&req); err != nil {
		return model.Clinic{}, err
	}
	patch := patchFrom(&req)
	if name, ok := patch["name"].(string); ok {
		if name = util.NormalizeName(name); name == "" {
			return model.Clinic{}, fieldError("name", "is required")
		}
		patch["name"] = name
	}
	if len(patch) == 0 {
		return s.Get(ctx, scope)
	}
	if !scope.Valid() {
		return model.Clinic{}, gateway.ErrScopeUnresolved
	}
	patch["updated_by_user"] = scope.UserID()
	patch["updated_by_ip"] = scope.IP()
	patch["updated_date"] = s.d.now()
	res := s.d.DB.WithContext(ctx).Model(&model.Clinic{}).Where("id = ?", scope.ClinicID()).Updates(patch)
	if res.Error != nil {
		return model.Clinic{}, s.d.report("update clinic", scope, &gateway.RemoteError{Op: "update", Table: "clinics", Err: res.Error})
	}
	if res.RowsAffected == 0 {
		return model.Clinic{}, gateway.ErrNotFound
	}
	return s.Get(ctx, scope)
}

// SetupRequest opens a clinic for a user that has none yet.
type SetupRequest struct {
	ClinicName string `json:"clinic_name" validate:"required,min=2,max=191"`
	FullName   string `json:"full_name" validate:"max=191"`
	Position   string `json:"position" default:"Admin" validate:"max=64"`
}

// Setup creates a clinic and the caller's profile in one transaction.
func (s *Clinics) Setup(ctx context.Context, userID uint, ip string, req SetupRequest) (model.Clinic, model.UserProfile, error) {
	req.ClinicName = util.NormalizeName(req.ClinicName)
	if err := validate(&req); err != nil {
		return model.Clinic{}, model.UserProfile{}, err
	}
	actor := userRef(userID)
	now := s.d.now()
	clinic := model.Clinic{
		Base:   model.Base{CreatedByUser: actor, CreatedByIP: ip, CreatedDate: now},
		Name:   req.ClinicName,
		Status: model.StatusActive,
	}
	profile := model.UserProfile{
		Base:     model.Base{CreatedByUser: actor, CreatedByIP: ip, CreatedDate: now},
		UserID:   userID,
		FullName: util.NormalizeName(req.FullName),
		Position: req.Position,
		Status:   model.StatusActive,
	}

	err := s.d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.UserProfile{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyOnboarded
		}
		if err := tx.Create(&clinic).Error; err != nil {
			return err
		}
		profile.ClinicID = clinic.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyOnboarded) {
			return model.Clinic{}, model.UserProfile{}, err
		}
		return model.Clinic{}, model.UserProfile{}, &gateway.RemoteError{Op: "insert", Table: "clinics", Err: err}
	}
	util.IdentityCacheDelete(userID)
	return clinic, profile, nil
}

// Profile returns the user's profile. found is false right after signup,
// before the user joined a clinic.
func (s *Clinics) Profile(ctx context.Context, userID uint) (profile model.UserProfile, found bool, err error) {
	return gateway.Lookup[model.UserProfile](ctx, s.d.DB, "user_id = ?", userID)
}

// userRef formats a user id the way scopes carry it.
func userRef(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
