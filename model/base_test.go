package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_AssignsUUIDAndCreatedDate(t *testing.T) {
	db := setupTestDB(t, "base", &Patient{})

	p := Patient{FullName: "Ana Ruiz", Tenant: Tenant{ClinicID: uuid.NewString(), Status: StatusActive}}
	require.NoError(t, db.Create(&p).Error)

	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err)
	assert.False(t, p.CreatedDate.IsZero())
}

func TestBase_KeepsExplicitID(t *testing.T) {
	db := setupTestDB(t, "base_explicit", &Dentist{})

	id := uuid.NewString()
	d := Dentist{Base: Base{ID: id}, FullName: "Dr. Gómez", Tenant: Tenant{ClinicID: "c1", Status: StatusActive}}
	require.NoError(t, db.Create(&d).Error)
	assert.Equal(t, id, d.ID)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("2").Valid())
	assert.False(t, Status("").Valid())
}

func TestAuditedAndScoped(t *testing.T) {
	var a Audited = &Appointment{}
	var s Scoped = &Appointment{}
	a.AuditBase().CreatedByUser = "u1"
	s.TenantPart().ClinicID = "c1"
	assert.NotNil(t, a.AuditBase())
}

func TestToothCondition_UniqueKey(t *testing.T) {
	db := setupTestDB(t, "tooth_key", &ToothCondition{})

	row := func() ToothCondition {
		return ToothCondition{
			Tenant:        Tenant{ClinicID: "c1", Status: StatusActive},
			OdontogramID:  "o1",
			ToothNumber:   36,
			Surface:       "occlusal",
			ConditionType: "caries",
		}
	}
	first := row()
	require.NoError(t, db.Create(&first).Error)
	second := row()
	assert.Error(t, db.Create(&second).Error)

	other := row()
	other.Surface = "mesial"
	assert.NoError(t, db.Create(&other).Error)
}

func TestToothCondition_Mark(t *testing.T) {
	end := 16
	c := ToothCondition{ToothNumber: 14, RangeEndTooth: &end, Surface: "whole", ConditionType: "bridge", ConditionStatus: "existing"}
	m := c.Mark()
	assert.Equal(t, 14, m.Tooth)
	assert.Equal(t, 16, m.RangeEnd)
	assert.EqualValues(t, "bridge", m.Condition)
}

func TestTreatmentCatalog_TableName(t *testing.T) {
	db := setupTestDB(t, "catalog", &TreatmentCatalog{})
	assert.True(t, db.Migrator().HasTable("treatments_catalog"))
}
