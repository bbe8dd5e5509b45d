package gate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"teamcal/internal/backend"
	"teamcal/internal/feed"
)

func TestCanCreate(t *testing.T) {
	tests := []struct {
		view     feed.View
		role     backend.Role
		expected bool
	}{
		{view: feed.ViewGeneral, role: backend.RoleOwner, expected: true},
		{view: feed.ViewGeneral, role: backend.RoleEmployee, expected: false},
		{view: feed.ViewPersonal, role: backend.RoleOwner, expected: true},
		{view: feed.ViewPersonal, role: backend.RoleEmployee, expected: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.view)+"/"+string(tc.role), func(t *testing.T) {
			require.Equal(t, tc.expected, CanCreate(tc.view, tc.role))
		})
	}
}

func TestCanInteract(t *testing.T) {
	tests := []struct {
		view     feed.View
		role     backend.Role
		kind     feed.Kind
		expected bool
	}{
		{view: feed.ViewGeneral, role: backend.RoleOwner, kind: feed.KindEvent, expected: true},
		{view: feed.ViewGeneral, role: backend.RoleOwner, kind: feed.KindTask, expected: true},
		{view: feed.ViewGeneral, role: backend.RoleEmployee, kind: feed.KindEvent, expected: false},
		{view: feed.ViewGeneral, role: backend.RoleEmployee, kind: feed.KindTask, expected: false},
		{view: feed.ViewPersonal, role: backend.RoleOwner, kind: feed.KindEvent, expected: true},
		{view: feed.ViewPersonal, role: backend.RoleOwner, kind: feed.KindTask, expected: true},
		{view: feed.ViewPersonal, role: backend.RoleEmployee, kind: feed.KindEvent, expected: true},
		{view: feed.ViewPersonal, role: backend.RoleEmployee, kind: feed.KindTask, expected: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.view)+"/"+string(tc.role)+"/"+string(tc.kind), func(t *testing.T) {
			require.Equal(t, tc.expected, CanInteract(tc.view, tc.role, tc.kind))
		})
	}
}

func TestFormAffordances(t *testing.T) {
	tests := []struct {
		view     feed.View
		role     backend.Role
		expected Affordances
	}{
		{
			view: feed.ViewGeneral, role: backend.RoleOwner,
			expected: Affordances{CanCreate: true, OfferTask: true, CalendarType: feed.ViewGeneral},
		},
		{
			view: feed.ViewGeneral, role: backend.RoleEmployee,
			expected: Affordances{CanCreate: false, OfferTask: false, CalendarType: feed.ViewGeneral},
		},
		{
			view: feed.ViewPersonal, role: backend.RoleOwner,
			expected: Affordances{CanCreate: true, OfferTask: false, CalendarType: feed.ViewPersonal},
		},
		{
			view: feed.ViewPersonal, role: backend.RoleEmployee,
			expected: Affordances{CanCreate: true, OfferTask: false, CalendarType: feed.ViewPersonal},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.view)+"/"+string(tc.role), func(t *testing.T) {
			require.Equal(t, tc.expected, FormAffordances(tc.view, tc.role))
		})
	}
}
