package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneTypeIsValid(t *testing.T) {
	for _, pt := range []PhoneType{
		PhoneTypeMobile, PhoneTypeLandline, PhoneTypeWork, PhoneTypeHome,
		PhoneTypeFax, PhoneTypeEmergency, PhoneTypeOther,
	} {
		assert.True(t, pt.IsValid(), string(pt))
	}

	assert.False(t, PhoneType("").IsValid())
	assert.False(t, PhoneType("PAGER").IsValid())
	assert.False(t, PhoneType("mobile").IsValid())
}

func TestIsRootAdmin(t *testing.T) {
	managerID := int64(1)

	rootAdmin := &Employee{Role: RoleAdmin, ManagerID: nil}
	assert.True(t, rootAdmin.IsRootAdmin())

	managedAdmin := &Employee{Role: RoleAdmin, ManagerID: &managerID}
	assert.False(t, managedAdmin.IsRootAdmin())

	managerlessLeader := &Employee{Role: RoleLeader, ManagerID: nil}
	assert.False(t, managerlessLeader.IsRootAdmin())
}
